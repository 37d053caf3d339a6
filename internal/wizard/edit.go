package wizard

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"edureg/pkg/types"

	"github.com/go-playground/form/v4"
)

var decoder = form.NewDecoder()

// Edit is one submission of field values for a step. Values use the form
// tags of the step model ("courses[0].name", "facilities.wifi"). Files map
// an attachment field's tag to the newly selected files.
//
// A bare key for a composite field (e.g. "facilities" or "photos" with an
// empty value) marks the field as edited, so that a checkbox group with
// nothing checked or an emptied file list is applied.
type Edit struct {
	Values url.Values
	Files  map[string][]types.Attachment
}

type EditResult struct {
	Step    types.StepID
	Status  types.CompletionStatus
	Fields  []string
	Notices []string
}

// ApplyEdit merges edit into the slice for step model T through a Binding.
// Only fields present in the edit change.
func ApplyEdit[T types.StepModel](s *State, edit Edit, limits Limits) (EditResult, error) {
	var decoded T
	t := reflect.TypeOf(decoded)
	id := decoded.Step()

	values, present := splitValues(t, edit.Values)
	if err := decoder.Decode(&decoded, values); err != nil {
		return EditResult{}, fmt.Errorf("failed to decode step %d values: %w", id, err)
	}
	present = append(present, attachFiles(&decoded, edit.Files)...)

	var notices []string
	b := Bind[T](s)
	b.Edit(func(local *T) {
		prev := clone(*local)
		mergeFields(local, &decoded, present)
		notices = constrain(prev, any(local).(types.StepModel), limits)
	})

	return EditResult{
		Step:    id,
		Status:  s.Status(id),
		Fields:  present,
		Notices: notices,
	}, nil
}

// ApplyStepEdit dispatches an edit to the step identified by id.
func ApplyStepEdit(s *State, id types.StepID, edit Edit, limits Limits) (EditResult, error) {
	switch id {
	case types.StepBasicInfo:
		return ApplyEdit[types.BasicInfo](s, edit, limits)
	case types.StepInfrastructure:
		return ApplyEdit[types.Infrastructure](s, edit, limits)
	case types.StepCoursesFees:
		return ApplyEdit[types.CoursesFees](s, edit, limits)
	case types.StepFaculty:
		return ApplyEdit[types.Faculty](s, edit, limits)
	case types.StepResults:
		return ApplyEdit[types.Results](s, edit, limits)
	case types.StepDocuments:
		return ApplyEdit[types.Documents](s, edit, limits)
	case types.StepDeclaration:
		return ApplyEdit[types.Declaration](s, edit, limits)
	default:
		return EditResult{}, fmt.Errorf("%w: %d", types.ErrUnknownStep, id)
	}
}

// splitValues returns the values to decode and the names of the top-level
// fields the edit touches. Attachment fields only accept files; keys nested
// under them are dropped.
func splitValues(t reflect.Type, in url.Values) (url.Values, []string) {
	composite := compositeFields(t)
	attachments := attachmentFields(t)
	known := make(map[string]bool)
	for _, name := range fieldNames(t) {
		known[name] = true
	}

	out := url.Values{}
	seen := make(map[string]bool)
	present := make([]string, 0)
	for key, vals := range in {
		top := topLevel(key)
		if !known[top] {
			continue
		}

		nested := key != top
		switch {
		case attachments[top] && nested:
			continue
		case composite[top] && !nested:
			// marker only
		default:
			out[key] = vals
		}

		if !seen[top] {
			seen[top] = true
			present = append(present, top)
		}
	}
	return out, present
}

func topLevel(key string) string {
	if i := strings.IndexAny(key, ".["); i >= 0 {
		return key[:i]
	}
	return key
}

func attachmentFields(t reflect.Type) map[string]bool {
	out := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := tagName(f)
		if name == "" {
			continue
		}
		if f.Type == reflect.PointerTo(attachmentType) || f.Type == reflect.SliceOf(attachmentType) {
			out[name] = true
		}
	}
	return out
}

// Redact returns a copy of m with attachment bytes and the account secret
// removed.
func Redact(m types.StepModel) types.StepModel {
	v := reflect.New(reflect.TypeOf(m)).Elem()
	v.Set(deepCopy(reflect.ValueOf(m)))
	redactAttachments(v)
	if b, ok := v.Addr().Interface().(*types.BasicInfo); ok {
		b.Password = ""
	}
	return v.Interface().(types.StepModel)
}

// View builds the client view of one step.
func View(s *State, id types.StepID, notices []string) (types.StepView, error) {
	data := s.StepData(id)
	if data == nil {
		return types.StepView{}, fmt.Errorf("%w: %d", types.ErrUnknownStep, id)
	}
	return types.StepView{
		Step:    id,
		Title:   id.Title(),
		Status:  s.Status(id),
		Data:    Redact(data),
		Hints:   Hints(data),
		Notices: notices,
	}, nil
}
