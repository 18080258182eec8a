package audit

import "fmt"

// TransitionEvent records a submission status change attempt.
type TransitionEvent struct {
	Login        string
	ClientIP     string
	Kind         string
	SubmissionID uint
	From         string
	To           string
	Success      bool
	ErrorMessage string
}

func (e TransitionEvent) MessageID() string {
	return "transition"
}

func (e TransitionEvent) Message() string {
	subject := fmt.Sprintf("%s submission %d from %s to %s", e.Kind, e.SubmissionID, e.From, e.To)
	if e.Success {
		return fmt.Sprintf("%s transitioned %s", e.Login, subject)
	}
	msg := fmt.Sprintf("%s failed to transition %s", e.Login, subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e TransitionEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e TransitionEvent) Facility() int {
	return FacilityUser
}

func (e TransitionEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Login,
		},
		SDIDSubject: {
			"kind":       e.Kind,
			"submission": fmt.Sprintf("%d", e.SubmissionID),
		},
		SDIDAction: {
			"from": e.From,
			"to":   e.To,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}

// ImportEvent records a bulk reconciliation run.
type ImportEvent struct {
	Login    string
	ClientIP string
	Kind     string
	Created  int
	Skipped  int
}

func (e ImportEvent) MessageID() string {
	return "import"
}

func (e ImportEvent) Message() string {
	return fmt.Sprintf("%s imported %s records: created %d, skipped %d", e.Login, e.Kind, e.Created, e.Skipped)
}

func (e ImportEvent) Severity() Severity {
	return SeverityInfo
}

func (e ImportEvent) Facility() int {
	return FacilityUser
}

func (e ImportEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Login,
		},
		SDIDSubject: {
			"kind": e.Kind,
		},
		SDIDAction: {
			"created": fmt.Sprintf("%d", e.Created),
			"skipped": fmt.Sprintf("%d", e.Skipped),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}

// ExportEvent records an XML document export.
type ExportEvent struct {
	Login        string
	ClientIP     string
	Document     string
	Kind         string
	RecordID     uint
	Success      bool
	ErrorMessage string
}

func (e ExportEvent) MessageID() string {
	return "export"
}

func (e ExportEvent) Message() string {
	subject := fmt.Sprintf("%s document for %s %d", e.Document, e.Kind, e.RecordID)
	if e.Success {
		return fmt.Sprintf("%s exported %s", e.Login, subject)
	}
	msg := fmt.Sprintf("%s failed to export %s", e.Login, subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ExportEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ExportEvent) Facility() int {
	return FacilityUser
}

func (e ExportEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Login,
		},
		SDIDSubject: {
			"document": e.Document,
			"kind":     e.Kind,
			"record":   fmt.Sprintf("%d", e.RecordID),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}

// AuthenticateEvent records a token authentication attempt.
type AuthenticateEvent struct {
	Login        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Login)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Login)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Login,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
}
