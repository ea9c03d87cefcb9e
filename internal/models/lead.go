package models

import "encoding/json"

// FormKind identifies which front-end form produced a submission. The
// source field is free text; anything unrecognized falls back to
// FormGeneric and gets the generic field-dump template.
type FormKind int

const (
	FormGeneric FormKind = iota
	FormRecruitment
	FormInjaz
	FormTasaheel
)

const (
	SourceRecruitment = "نموذج الاستقدام"
	SourceInjaz       = "نموذج إنجاز"
	SourceTasaheel    = "حجز موعد تساهيل"
)

// ParseFormKind maps a source value to its form kind
func ParseFormKind(source string) FormKind {
	switch source {
	case SourceRecruitment:
		return FormRecruitment
	case SourceInjaz:
		return FormInjaz
	case SourceTasaheel:
		return FormTasaheel
	default:
		return FormGeneric
	}
}

// AttachmentCategory is one of the fixed file buckets the front-end forms
// submit. The names are the multipart field names and must match the
// front end exactly, including the capitalized RecruitmentForm.
type AttachmentCategory string

const (
	CategoryVisaDocument    AttachmentCategory = "visaDocument"
	CategoryPassportImage   AttachmentCategory = "passportImage"
	CategoryRecruitmentForm AttachmentCategory = "RecruitmentForm"
)

// Categories returns the fixed category set in processing order
func Categories() []AttachmentCategory {
	return []AttachmentCategory{
		CategoryRecruitmentForm,
		CategoryPassportImage,
		CategoryVisaDocument,
	}
}

// Label returns the category's display label for document captions
func (c AttachmentCategory) Label() string {
	switch c {
	case CategoryVisaDocument:
		return "مستند التأشيرة"
	case CategoryPassportImage:
		return "صورة الجواز"
	case CategoryRecruitmentForm:
		return "نموذج الاستقدام"
	default:
		return string(c)
	}
}

// Attachment is one uploaded file, already written to the temp upload dir
// by the HTTP layer. FileName is the untrusted client-supplied name, used
// only for display and the Telegram caption.
type Attachment struct {
	Category AttachmentCategory
	FileName string
	Path     string
	Size     int64
}

// UploadOutcome records the result of delivering one attachment
type UploadOutcome struct {
	FileName string
	OK       bool
}

// LeadSubmission is one parsed multipart form submission. Attachments are
// keyed by category; FieldOrder preserves the order text fields arrived in
// so the generic template renders deterministically.
type LeadSubmission struct {
	Source      string
	Fields      map[string]string
	FieldOrder  []string
	Attachments map[AttachmentCategory][]Attachment
}

// Field returns a text field value and whether it was present and non-empty
func (s *LeadSubmission) Field(name string) (string, bool) {
	v, ok := s.Fields[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ClientName returns the best available display name for the client:
// clientName, then fullName, then a fixed placeholder.
func (s *LeadSubmission) ClientName() string {
	if v, ok := s.Field("clientName"); ok {
		return v
	}
	if v, ok := s.Field("fullName"); ok {
		return v
	}
	return "غير معروف"
}

// TempPaths returns every attachment temp path across all categories, in
// processing order. The orchestrator deletes all of them after a request,
// whatever its outcome.
func (s *LeadSubmission) TempPaths() []string {
	var paths []string
	for _, cat := range Categories() {
		for _, att := range s.Attachments[cat] {
			paths = append(paths, att.Path)
		}
	}
	return paths
}

// ServiceSelection is the decoded selectedServices field. The front end
// sends either a JSON array of strings or a raw string; rather than
// inspecting types at render time the ambiguity is resolved once, here.
type ServiceSelection struct {
	Items  []string
	Raw    string
	IsList bool
}

// ParseServices decodes a selectedServices value with the
// parse-attempt-with-fallback rule: a JSON string array becomes a list,
// everything else (scalar JSON, malformed JSON) stays the raw string.
func ParseServices(raw string) ServiceSelection {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return ServiceSelection{Items: items, IsList: true}
	}
	return ServiceSelection{Raw: raw}
}

// SendLeadResponse is the JSON body returned to the form front end
type SendLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
