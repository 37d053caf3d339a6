package wizard

import (
	"fmt"
	"reflect"
	"time"

	"edureg/pkg/types"
)

// State is the aggregate form state for one wizard session. It owns the seven
// step slices, the current step pointer and the derived completion statuses.
//
// State is not safe for concurrent use; a session is handled by one request
// at a time.
type State struct {
	current   types.StepID
	form      types.FormData
	statuses  map[types.StepID]types.CompletionStatus
	updatedAt time.Time

	observers []func(types.StepID)
}

func New() *State {
	s := &State{
		current: types.StepBasicInfo,
		form:    types.NewFormData(),
	}
	s.recompute()
	return s
}

// FromFormState restores a serialized state. An out of range current step is
// clamped.
func FromFormState(fs types.FormState) *State {
	s := &State{
		current:   clampStep(int(fs.CurrentStep)),
		form:      fs.Steps,
		updatedAt: fs.UpdatedAt,
	}
	fillDefaults(&s.form)
	s.recompute()
	return s
}

// FormState returns a serializable copy of the state.
func (s *State) FormState() types.FormState {
	return types.FormState{
		CurrentStep: s.current,
		Steps:       clone(s.form),
		UpdatedAt:   s.updatedAt,
	}
}

// OnChange registers fn to run after any step slice is written.
func (s *State) OnChange(fn func(types.StepID)) {
	s.observers = append(s.observers, fn)
}

// Data returns a copy of the slice for step model T.
func Data[T types.StepModel](s *State) T {
	return clone(*slot[T](s))
}

// Update applies fn to the slice for step model T. Only that slice is
// writable from fn.
func Update[T types.StepModel](s *State, fn func(*T)) {
	p := slot[T](s)
	fn(p)
	s.changed((*p).Step())
}

// StepData returns a copy of the given step's slice, or nil for an unknown
// step.
func (s *State) StepData(id types.StepID) types.StepModel {
	p := s.slotByID(id)
	if p == nil {
		return nil
	}
	return deepCopy(reflect.ValueOf(p).Elem()).Interface().(types.StepModel)
}

// UpdateStepData shallow-merges partial into the step's slice. When fields
// are named, exactly those top-level fields (by form tag) are copied, which
// allows clearing a field. Otherwise every non-default field of partial is
// copied. Fields not merged keep their values.
func (s *State) UpdateStepData(id types.StepID, partial types.StepModel, fields ...string) error {
	p := s.slotByID(id)
	if p == nil {
		return fmt.Errorf("%w: %d", types.ErrUnknownStep, id)
	}
	if partial == nil {
		return fmt.Errorf("%w: partial does not belong to step %d", types.ErrUnknownStep, id)
	}
	pv := reflect.ValueOf(partial)
	if pv.Kind() == reflect.Ptr {
		if pv.IsNil() {
			return fmt.Errorf("%w: partial does not belong to step %d", types.ErrUnknownStep, id)
		}
		pv = pv.Elem()
	}
	if partial.Step() != id || pv.Type() != reflect.TypeOf(p).Elem() {
		return fmt.Errorf("%w: partial does not belong to step %d", types.ErrUnknownStep, id)
	}

	if len(fields) == 0 {
		fields = nonDefaultFields(pv.Interface())
	}

	src := reflect.New(pv.Type())
	src.Elem().Set(pv)
	mergeFields(p, src.Interface(), fields)

	s.changed(id)
	return nil
}

// Reset replaces the whole state with defaults.
func (s *State) Reset() {
	s.form = types.NewFormData()
	s.current = types.StepBasicInfo
	s.recompute()
	s.updatedAt = time.Now()
	for _, id := range types.AllSteps() {
		s.notify(id)
	}
}

func (s *State) CurrentStep() types.StepID {
	return s.current
}

// SetCurrentStep moves to step n, clamped to [1, TotalSteps].
func (s *State) SetCurrentStep(n int) types.StepID {
	s.current = clampStep(n)
	return s.current
}

func (s *State) Next() types.StepID {
	return s.SetCurrentStep(int(s.current) + 1)
}

func (s *State) Prev() types.StepID {
	return s.SetCurrentStep(int(s.current) - 1)
}

func (s *State) Status(id types.StepID) types.CompletionStatus {
	if st, ok := s.statuses[id]; ok {
		return st
	}
	return types.StatusNotStarted
}

func (s *State) IsFormComplete() bool {
	for _, id := range types.AllSteps() {
		if s.statuses[id] != types.StatusCompleted {
			return false
		}
	}
	return true
}

func (s *State) Summary() types.WizardView {
	view := types.WizardView{
		CurrentStep:    s.current,
		TotalSteps:     types.TotalSteps,
		Steps:          make([]types.StepSummary, 0, types.TotalSteps),
		IsFormComplete: s.IsFormComplete(),
	}
	for _, id := range types.AllSteps() {
		view.Steps = append(view.Steps, types.StepSummary{
			Step:   id,
			Title:  id.Title(),
			Status: s.Status(id),
		})
	}
	return view
}

func (s *State) changed(id types.StepID) {
	s.updatedAt = time.Now()
	s.statuses[id] = StatusOf(s.slotValue(id))
	s.notify(id)
}

func (s *State) notify(id types.StepID) {
	for _, fn := range s.observers {
		fn(id)
	}
}

func (s *State) recompute() {
	s.statuses = make(map[types.StepID]types.CompletionStatus, types.TotalSteps)
	for _, id := range types.AllSteps() {
		s.statuses[id] = StatusOf(s.slotValue(id))
	}
}

func (s *State) slotValue(id types.StepID) types.StepModel {
	return reflect.ValueOf(s.slotByID(id)).Elem().Interface().(types.StepModel)
}

func (s *State) slotByID(id types.StepID) any {
	switch id {
	case types.StepBasicInfo:
		return &s.form.BasicInfo
	case types.StepInfrastructure:
		return &s.form.Infrastructure
	case types.StepCoursesFees:
		return &s.form.CoursesFees
	case types.StepFaculty:
		return &s.form.Faculty
	case types.StepResults:
		return &s.form.Results
	case types.StepDocuments:
		return &s.form.Documents
	case types.StepDeclaration:
		return &s.form.Declaration
	default:
		return nil
	}
}

func slot[T types.StepModel](s *State) *T {
	var zero T
	return s.slotByID(zero.Step()).(*T)
}

func clampStep(n int) types.StepID {
	if n < int(types.StepBasicInfo) {
		return types.StepBasicInfo
	}
	if n > types.TotalSteps {
		return types.StepDeclaration
	}
	return types.StepID(n)
}

// fillDefaults replaces nil slices, which a decoded state may carry, with
// empty ones.
func fillDefaults(f *types.FormData) {
	if f.Infrastructure.Photos == nil {
		f.Infrastructure.Photos = []types.Attachment{}
	}
	if f.CoursesFees.Courses == nil {
		f.CoursesFees.Courses = []types.Course{}
	}
	if f.Faculty.Members == nil {
		f.Faculty.Members = []types.FacultyMember{}
	}
	if f.Results.ExamResults == nil {
		f.Results.ExamResults = []types.ExamResult{}
	}
	if f.Results.Awards == nil {
		f.Results.Awards = []types.Attachment{}
	}
	if f.Documents.Additional == nil {
		f.Documents.Additional = []types.Attachment{}
	}
}
