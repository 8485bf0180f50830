package notification

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMessageType = errors.New("unknown message type")

// Rendered is the subject and plain-text body for one notification
type Rendered struct {
	Subject string
	Body    string
}

type renderFunc func(p params) Rendered

var renderers = map[MessageType]renderFunc{
	CourseCreationSuccess:    renderSuccess,
	CourseCreationFailure:    renderFailure,
	CourseCreationProgress:   renderProgress,
	CourseStructureGenerated: renderStructureGenerated,
}

// MessageTypes lists every renderable type in a stable order
func MessageTypes() []MessageType {
	return []MessageType{
		CourseCreationSuccess,
		CourseCreationFailure,
		CourseCreationProgress,
		CourseStructureGenerated,
	}
}

// Render looks up the renderer for the message type
func Render(msgType MessageType, values map[string]any) (Rendered, error) {
	render, ok := renderers[msgType]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s", ErrUnknownMessageType, msgType)
	}
	return render(params(values)), nil
}

type params map[string]any

func (p params) get(key string) string {
	if v, ok := p[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func footer(p params) string {
	var b strings.Builder
	b.WriteString("\n\nGo to your dashboard: ")
	b.WriteString(p.get("dashboard_url"))
	b.WriteString("\nQuestions? Contact us at ")
	b.WriteString(p.get("reply_to_email"))
	b.WriteString("\n\nThe ")
	b.WriteString(p.get("platform_name"))
	b.WriteString(" Team")
	return b.String()
}

func renderSuccess(p params) Rendered {
	return Rendered{
		Subject: fmt.Sprintf("Your course %q is ready", p.get("course_name")),
		Body: fmt.Sprintf("Hello %s,\n\nYour AI-generated course %q has been created.\n\nCourse: %s\nOpen it here: %s",
			p.get("full_name"), p.get("course_name"), p.get("course_key"), p.get("course_url")) + footer(p),
	}
}

func renderFailure(p params) Rendered {
	return Rendered{
		Subject: fmt.Sprintf("Course creation failed: %s", p.get("course_topic")),
		Body: fmt.Sprintf("Hello %s,\n\nWe could not create your course on %q.\n\nReason: %s",
			p.get("full_name"), p.get("course_topic"), p.get("error_message")) + footer(p),
	}
}

func renderProgress(p params) Rendered {
	return Rendered{
		Subject: fmt.Sprintf("Course creation update: %s", p.get("course_topic")),
		Body: fmt.Sprintf("Hello %s,\n\nUpdate on your course %q:\n\n%s",
			p.get("full_name"), p.get("course_topic"), p.get("progress_message")) + footer(p),
	}
}

func renderStructureGenerated(p params) Rendered {
	return Rendered{
		Subject: fmt.Sprintf("Course structure ready: %s", p.get("course_topic")),
		Body: fmt.Sprintf("Hello %s,\n\nThe structure for your course %q has been generated and is ready for review.",
			p.get("full_name"), p.get("course_topic")) + footer(p),
	}
}
