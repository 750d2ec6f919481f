package editor

import (
	"fmt"

	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// Field names a personal info field by its JSON key
type Field string

// Personal info fields
const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldJobTitle Field = "job_title"
	FieldLocation Field = "location"
	FieldLinkedIn Field = "linkedin"
	FieldWebsite  Field = "website"
	FieldGitHub   Field = "github"
)

// PersonalInfoFields lists the fields in form order.
var PersonalInfoFields = []Field{
	FieldName, FieldJobTitle, FieldEmail, FieldPhone, FieldLocation, FieldLinkedIn, FieldGitHub, FieldWebsite,
}

var personalInfoMessages = messages{
	"name.required":      "Name is required",
	"email.required":     "Email is required",
	"email.email":        "Enter a valid email",
	"phone.required":     "Phone number is required",
	"job_title.required": "Job title is required",
}

// PersonalInfoEditor edits the contact block. Every change is committed to the store immediately.
type PersonalInfoEditor struct {
	store *store.Store
}

// NewPersonalInfoEditor returns an editor bound to st.
func NewPersonalInfoEditor(st *store.Store) *PersonalInfoEditor {
	return &PersonalInfoEditor{store: st}
}

// Info returns the current personal info, zero-valued when unset.
func (e *PersonalInfoEditor) Info() types.PersonalInfo {
	doc := e.store.Document()
	if doc.PersonalInfo == nil {
		return types.PersonalInfo{}
	}
	return *doc.PersonalInfo
}

// Get returns the value of one field.
func (e *PersonalInfoEditor) Get(field Field) string {
	info := e.Info()
	p, err := fieldPtr(&info, field)
	if err != nil {
		return ""
	}
	return *p
}

// Set writes one field and commits the whole block.
func (e *PersonalInfoEditor) Set(field Field, value string) error {
	info := e.Info()
	p, err := fieldPtr(&info, field)
	if err != nil {
		return err
	}
	*p = value
	e.store.Merge(store.Patch{PersonalInfo: &info})
	return nil
}

// Validate checks the required fields and records the outcome on the editor view.
func (e *PersonalInfoEditor) Validate() error {
	info := e.Info()
	err := checkStruct("personal info", &info, personalInfoMessages)
	if err != nil {
		e.store.SetError(store.ViewEditor, err.Error())
		return err
	}
	e.store.ClearError(store.ViewEditor)
	return nil
}

func fieldPtr(info *types.PersonalInfo, field Field) (*string, error) {
	switch field {
	case FieldName:
		return &info.Name, nil
	case FieldEmail:
		return &info.Email, nil
	case FieldPhone:
		return &info.Phone, nil
	case FieldJobTitle:
		return &info.JobTitle, nil
	case FieldLocation:
		return &info.Location, nil
	case FieldLinkedIn:
		return &info.LinkedIn, nil
	case FieldWebsite:
		return &info.Website, nil
	case FieldGitHub:
		return &info.GitHub, nil
	default:
		return nil, fmt.Errorf("unknown personal info field: %s", field)
	}
}
