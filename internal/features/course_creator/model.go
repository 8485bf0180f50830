package course_creator

// CourseRequest is the generation request forwarded to AICC. Only the
// fields this service reads are typed; everything else passes through.
type CourseRequest map[string]any

func (r CourseRequest) Topic() string {
	if topic, ok := r["topic"].(string); ok && topic != "" {
		return topic
	}
	return "your course"
}

func (r CourseRequest) Action() string {
	action, _ := r["action"].(string)
	return action
}

const structureGeneratedStatus = "structure_generated"
