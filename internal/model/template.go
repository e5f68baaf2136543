package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"
	"time"
)

// TemplateData is a tagged union of per-type template variables. Exactly
// the variant matching Kind must be set; the open key-value map the
// platform used before is deliberately gone.
type TemplateData struct {
	Kind Type `json:"kind"`

	SessionReminder  *SessionReminderData  `json:"session_reminder,omitempty"`
	SessionCancelled *SessionCancelledData `json:"session_cancelled,omitempty"`
	NewMessage       *NewMessageData       `json:"new_message,omitempty"`
	TaskDue          *TaskDueData          `json:"task_due,omitempty"`
	SystemAlert      *SystemAlertData      `json:"system_alert,omitempty"`
}

// SessionReminderData carries the variables of a session reminder.
type SessionReminderData struct {
	SessionTitle string    `json:"session_title"`
	CoachName    string    `json:"coach_name"`
	StartsAt     time.Time `json:"starts_at"`
}

// SessionCancelledData carries the variables of a cancellation notice.
type SessionCancelledData struct {
	SessionTitle string    `json:"session_title"`
	StartsAt     time.Time `json:"starts_at"`
	Reason       string    `json:"reason,omitempty"`
}

// NewMessageData carries the variables of a new-message notification.
type NewMessageData struct {
	SenderName string `json:"sender_name"`
	Preview    string `json:"preview"`
}

// TaskDueData carries the variables of a task-due notification.
type TaskDueData struct {
	TaskTitle string    `json:"task_title"`
	DueAt     time.Time `json:"due_at"`
}

// SystemAlertData carries the variables of a system alert.
type SystemAlertData struct {
	Message string `json:"message"`
}

var ErrTemplateDataMismatch = errors.New("template data does not match notification type")

// Validate checks that exactly the variant matching Kind is present.
func (d TemplateData) Validate() error {
	variants := map[Type]bool{
		TypeSessionReminder:  d.SessionReminder != nil,
		TypeSessionCancelled: d.SessionCancelled != nil,
		TypeNewMessage:       d.NewMessage != nil,
		TypeTaskDue:          d.TaskDue != nil,
		TypeSystemAlert:      d.SystemAlert != nil,
	}

	set, known := variants[d.Kind]
	if !known {
		return fmt.Errorf("%w: unknown kind %q", ErrTemplateDataMismatch, d.Kind)
	}
	if !set {
		return fmt.Errorf("%w: missing %q variant", ErrTemplateDataMismatch, d.Kind)
	}

	for kind, present := range variants {
		if kind != d.Kind && present {
			return fmt.Errorf("%w: extra %q variant for kind %q", ErrTemplateDataMismatch, kind, d.Kind)
		}
	}

	return nil
}

// variant returns the populated variant for template execution.
func (d TemplateData) variant() interface{} {
	switch d.Kind {
	case TypeSessionReminder:
		return d.SessionReminder
	case TypeSessionCancelled:
		return d.SessionCancelled
	case TypeNewMessage:
		return d.NewMessage
	case TypeTaskDue:
		return d.TaskDue
	case TypeSystemAlert:
		return d.SystemAlert
	}
	return nil
}

// Default subject and body templates per notification type, executed
// against the matching TemplateData variant.
var (
	defaultTitles = map[Type]*template.Template{
		TypeSessionReminder:  template.Must(template.New("title").Parse(`Upcoming session: {{.SessionTitle}}`)),
		TypeSessionCancelled: template.Must(template.New("title").Parse(`Session cancelled: {{.SessionTitle}}`)),
		TypeNewMessage:       template.Must(template.New("title").Parse(`New message from {{.SenderName}}`)),
		TypeTaskDue:          template.Must(template.New("title").Parse(`Task due: {{.TaskTitle}}`)),
		TypeSystemAlert:      template.Must(template.New("title").Parse(`Important update`)),
	}

	defaultBodies = map[Type]*template.Template{
		TypeSessionReminder:  template.Must(template.New("body").Parse(`Your session "{{.SessionTitle}}" with {{.CoachName}} starts at {{.StartsAt.Format "15:04, Jan 2"}}.`)),
		TypeSessionCancelled: template.Must(template.New("body").Parse(`Your session "{{.SessionTitle}}" scheduled for {{.StartsAt.Format "15:04, Jan 2"}} has been cancelled.{{if .Reason}} Reason: {{.Reason}}{{end}}`)),
		TypeNewMessage:       template.Must(template.New("body").Parse(`{{.SenderName}}: {{.Preview}}`)),
		TypeTaskDue:          template.Must(template.New("body").Parse(`"{{.TaskTitle}}" is due at {{.DueAt.Format "15:04, Jan 2"}}.`)),
		TypeSystemAlert:      template.Must(template.New("body").Parse(`{{.Message}}`)),
	}
)

// RenderTitle renders the default subject line for the data's kind.
func (d TemplateData) RenderTitle() (string, error) {
	return d.render(defaultTitles)
}

// RenderBody renders the default body text for the data's kind.
func (d TemplateData) RenderBody() (string, error) {
	return d.render(defaultBodies)
}

func (d TemplateData) render(set map[Type]*template.Template) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := set[d.Kind].Execute(&buf, d.variant()); err != nil {
		return "", fmt.Errorf("execute template for %s: %w", d.Kind, err)
	}

	return buf.String(), nil
}

// Value implements driver.Valuer so the union is stored as jsonb.
func (d TemplateData) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal template data: %w", err)
	}

	return b, nil
}

// Scan implements sql.Scanner for the jsonb column.
func (d *TemplateData) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = TemplateData{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return fmt.Errorf("unsupported template data source %T", src)
}
