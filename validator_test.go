package fieldcheck

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

// minInt passes when an int value is at least the first option.
func minInt(value any, opts ...Option) bool {
	n, ok := value.(int)
	if !ok || len(opts) == 0 {
		return false
	}
	bound, err := opts[0].Int()
	return err == nil && n >= bound
}

func notEmpty(value any, _ ...Option) bool {
	s, ok := value.(string)
	return ok && s != ""
}

func alwaysFail(any, ...Option) bool { return false }

func TestValidate_RuleFreeConfiguration(t *testing.T) {
	records := []*Record{
		NewRecord().Set("a", 1),
		NewRecord().Set("name", "").Set("age", -4),
		RecordFromMap(map[string]any{"x": nil, "y": []any{}}),
	}

	for _, r := range records {
		v := New(nil)
		v.AddField("name", "Name", nil)

		ok, err := v.Validate(r)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !ok {
			t.Errorf("Validate(%v) = false, want true", r.Map())
		}
		if len(v.Errors()) != 0 {
			t.Errorf("Errors() = %v, want empty", v.Errors())
		}
	}
}

func TestValidate_FailingConstraint(t *testing.T) {
	v := New(nil).AddConstraintFunc("required", notEmpty)
	if err := v.AddField("name", "", nil); err != nil {
		t.Fatalf("AddField() error = %v", err)
	}
	if err := v.AddRule("name", "required", "{field} is required"); err != nil {
		t.Fatalf("AddRule() error = %v", err)
	}

	ok, err := v.Validate(NewRecord().Set("name", ""))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Error("Validate() = true, want false")
	}
	if got := v.Errors()["name"]; got != "name is required" {
		t.Errorf("Errors()[name] = %q, want %q", got, "name is required")
	}
}

func TestValidate_EndToEnd(t *testing.T) {
	v := New(nil).AddConstraintFunc("min", minInt)
	v.AddField("age", "Age", nil)
	if err := v.AddRule("age", "min", "{title} must be at least {0}", StringOption("18")); err != nil {
		t.Fatalf("AddRule() error = %v", err)
	}

	ok, err := v.Validate(NewRecord().Set("age", 15))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Error("Validate({age: 15}) = true, want false")
	}
	if got := v.Errors()["age"]; got != "Age must be at least 18" {
		t.Errorf("Errors()[age] = %q, want %q", got, "Age must be at least 18")
	}

	v.Reset()
	ok, err = v.Validate(NewRecord().Set("age", 20))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !ok {
		t.Error("Validate({age: 20}) = false, want true")
	}
	if len(v.Errors()) != 0 {
		t.Errorf("Errors() = %v, want empty", v.Errors())
	}
}

func TestAddRule_OverwriteLaw(t *testing.T) {
	var calls int
	var seen []Option

	v := New(nil).AddConstraintFunc("min", func(value any, opts ...Option) bool {
		calls++
		seen = opts
		return minInt(value, opts...)
	})
	v.AddField("age", "", nil)
	v.AddRule("age", "min", "too small", StringOption("10"))
	v.AddRule("age", "min", "too small", StringOption("18"))

	rules := v.Rules()["age"]
	if len(rules) != 1 {
		t.Fatalf("Rules()[age] has %d bindings, want 1", len(rules))
	}
	if !reflect.DeepEqual(rules[0].Options, Options("18")) {
		t.Errorf("binding options = %v, want [18]", rules[0].Options)
	}

	ok, err := v.Validate(NewRecord().Set("age", 15))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Error("Validate() = true, want false")
	}
	if calls != 1 {
		t.Errorf("constraint called %d times, want 1", calls)
	}
	if !reflect.DeepEqual(seen, Options("18")) {
		t.Errorf("constraint received %v, want [18]", seen)
	}
}

func TestAddRule_OverwriteKeepsPosition(t *testing.T) {
	v := New(nil).
		AddConstraintFunc("first", alwaysFail).
		AddConstraintFunc("second", alwaysFail)
	v.AddField("f", "", nil)
	v.AddRule("f", "first", "first failed")
	v.AddRule("f", "second", "second failed")
	v.AddRule("f", "first", "first replaced")

	v.Validate(NewRecord().Set("f", "x"))
	if got := v.Errors()["f"]; got != "second failed" {
		t.Errorf("Errors()[f] = %q, want %q", got, "second failed")
	}
}

func TestValidate_LastFailingRuleWins(t *testing.T) {
	v := New(nil).
		AddConstraintFunc("required", notEmpty).
		AddConstraintFunc("min", minInt).
		AddConstraintFunc("pass", func(any, ...Option) bool { return true })
	v.AddField("age", "Age", nil)
	v.AddRule("age", "required", "{title} is required")
	v.AddRule("age", "min", "{title} must be at least {0}", StringOption("18"))
	v.AddRule("age", "pass", "never shown")

	ok, err := v.Validate(NewRecord().Set("age", 15))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Error("Validate() = true, want false")
	}

	errs := v.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() = %v, want exactly one entry", errs)
	}
	if errs["age"] != "Age must be at least 18" {
		t.Errorf("Errors()[age] = %q, want %q", errs["age"], "Age must be at least 18")
	}
}

func TestAddRule_DefaultMessageSeeding(t *testing.T) {
	v := New(nil).AddConstraintFunc("required", notEmpty)
	v.AddField("a", "A", nil)
	v.AddField("b", "B", nil)
	v.AddRule("a", "required", "")
	v.AddRule("b", "required", "")

	if msg, ok := v.Messages()["required"]; !ok || msg != "" {
		t.Errorf("Messages()[required] = %q, %v; want seeded empty entry", msg, ok)
	}

	v.AddMessages(map[string]string{"required": "{title} is required"})

	ok, err := v.Validate(NewRecord().Set("a", "").Set("b", ""))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Error("Validate() = true, want false")
	}

	want := map[string]string{"a": "A is required", "b": "B is required"}
	if got := v.Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Errors() = %v, want %v", got, want)
	}
}

func TestAddRule_FirstMessageFixesDefault(t *testing.T) {
	v := New(nil).AddConstraintFunc("required", notEmpty)
	v.AddField("a", "", nil)
	v.AddField("b", "", nil)
	v.AddRule("a", "required", "{field} first")
	v.AddRule("b", "required", "{field} second")
	v.AddField("c", "", nil)
	v.AddRule("c", "required", "")

	if got := v.Messages()["required"]; got != "{field} first" {
		t.Errorf("Messages()[required] = %q, want %q", got, "{field} first")
	}

	v.Validate(NewRecord().Set("a", "").Set("b", "").Set("c", ""))
	want := map[string]string{"a": "a first", "b": "b second", "c": "c first"}
	if got := v.Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Errors() = %v, want %v", got, want)
	}
}

func TestValidate_MissingConstraint(t *testing.T) {
	v := New(nil)
	v.AddField("age", "", nil)
	v.AddRule("age", "min", "too small", StringOption("18"))

	ok, err := v.Validate(NewRecord().Set("age", 15))
	if ok {
		t.Error("Validate() = true, want false")
	}
	if !errors.Is(err, ErrMissingConstraint) {
		t.Fatalf("Validate() error = %v, want ErrMissingConstraint", err)
	}

	var ce *ConstraintError
	if !errors.As(err, &ce) || ce.Rule != "min" || ce.Field != "age" {
		t.Errorf("error = %#v, want ConstraintError{age, min}", err)
	}
	if len(v.Errors()) != 0 {
		t.Errorf("Errors() = %v, want empty", v.Errors())
	}
}

func TestValidate_ConstraintRegisteredAfterRule(t *testing.T) {
	v := New(nil)
	v.AddField("age", "Age", nil)
	if err := v.AddRule("age", "min", "{title} must be at least {0}", StringOption("18")); err != nil {
		t.Fatalf("AddRule() error = %v", err)
	}
	v.AddConstraintFunc("min", minInt)

	ok, err := v.Validate(NewRecord().Set("age", 15))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Error("Validate() = true, want false")
	}
	if got := v.Errors()["age"]; got != "Age must be at least 18" {
		t.Errorf("Errors()[age] = %q, want %q", got, "Age must be at least 18")
	}
}

func TestValidate_AbortKeepsEarlierFailures(t *testing.T) {
	v := New(nil).AddConstraintFunc("required", notEmpty)
	v.AddField("name", "", nil)
	v.AddField("age", "", nil)
	v.AddRule("name", "required", "{field} is required")
	v.AddRule("age", "min", "too small")

	ok, err := v.Validate(NewRecord().Set("name", "").Set("age", 15))
	if ok {
		t.Error("Validate() = true, want false")
	}
	if !errors.Is(err, ErrMissingConstraint) {
		t.Fatalf("Validate() error = %v, want ErrMissingConstraint", err)
	}

	want := map[string]string{"name": "name is required"}
	if got := v.Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Errors() = %v, want %v", got, want)
	}

	if got, err := v.Evaluate(NewRecord().Set("name", "").Set("age", 15)); got != nil || err == nil {
		t.Errorf("Evaluate() = %v, %v; want nil map and an error", got, err)
	}
}

func TestValidate_ConstraintReadsValidatorState(t *testing.T) {
	v := New(nil)
	v.AddConstraintFunc("matches", func(value any, opts ...Option) bool {
		other, _ := v.Data().Get(opts[0].String())
		_ = v.Errors()
		_ = v.Err()
		return value == other
	})
	v.AddField("confirm", "Confirmation", nil)
	v.AddRule("confirm", "matches", "{title} must match {0}", StringOption("password"))

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		ok, err := v.Validate(NewRecord().Set("password", "a").Set("confirm", "b"))
		done <- result{ok, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			t.Fatalf("Validate() error = %v", r.err)
		}
		if r.ok {
			t.Error("Validate() = true, want false")
		}
		if got := v.Errors()["confirm"]; got != "Confirmation must match password" {
			t.Errorf("Errors()[confirm] = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Validate did not return while a constraint read the validator")
	}
}

func TestValidate_MissingConstraintOnAbsentFieldIsIgnored(t *testing.T) {
	v := New(nil)
	v.AddField("age", "", nil)
	v.AddRule("age", "min", "too small")

	ok, err := v.Validate(NewRecord().Set("name", "gopher"))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !ok {
		t.Error("Validate() = false, want true")
	}
}

func TestValidate_MissingMessage(t *testing.T) {
	v := New(nil).AddConstraintFunc("required", notEmpty)
	v.AddField("name", "", nil)
	v.AddRule("name", "required", "")

	_, err := v.Validate(NewRecord().Set("name", ""))
	if !errors.Is(err, ErrMissingMessage) {
		t.Fatalf("Validate() error = %v, want ErrMissingMessage", err)
	}

	var me *MessageError
	if !errors.As(err, &me) || me.Rule != "required" {
		t.Errorf("error = %#v, want MessageError for required", err)
	}
}

func TestAddRule_UnknownField(t *testing.T) {
	v := New(nil)

	err := v.AddRule("ghost", "required", "")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("AddRule() error = %v, want ErrUnknownField", err)
	}
	if len(v.Rules()) != 0 {
		t.Errorf("Rules() = %v, want empty", v.Rules())
	}
	if _, ok := v.Messages()["required"]; ok {
		t.Error("failed AddRule seeded the message table")
	}
}

func TestValidate_UsageGuard(t *testing.T) {
	v := New(nil).AddConstraintFunc("required", notEmpty)
	v.AddField("name", "", nil)
	v.AddRule("name", "required", "required")

	ok, err := v.Validate(nil)
	if err != nil {
		t.Fatalf("Validate(nil) error = %v", err)
	}
	if ok {
		t.Error("Validate(nil) = true, want false")
	}
	if len(v.Errors()) != 0 {
		t.Errorf("Errors() = %v, want empty", v.Errors())
	}

	ok, _ = v.Validate(NewRecord())
	if ok {
		t.Error("Validate(empty) = true, want false")
	}
}

func TestValidate_UsesStoredRecord(t *testing.T) {
	v := New(NewRecord().Set("name", "")).AddConstraintFunc("required", notEmpty)
	v.AddField("name", "", nil)
	v.AddRule("name", "required", "{field} is required")

	ok, err := v.Validate(nil)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Error("Validate() = true, want false")
	}

	// A non-empty record replaces the stored one.
	next := NewRecord().Set("other", 1)
	v.Validate(next)
	if v.Data() != next {
		t.Error("Validate did not replace the stored record")
	}
}

func TestValidate_ErrorsAccumulateUntilReset(t *testing.T) {
	v := New(nil).AddConstraintFunc("required", notEmpty)
	v.AddField("name", "", nil)
	v.AddRule("name", "required", "{field} is required")

	v.Validate(NewRecord().Set("name", ""))
	ok, _ := v.Validate(NewRecord().Set("name", "gopher"))
	if ok {
		t.Error("Validate() = true after earlier failure, want false until Reset")
	}

	v.Reset()
	ok, _ = v.Validate(NewRecord().Set("name", "gopher"))
	if !ok {
		t.Error("Validate() = false after Reset, want true")
	}
}

func TestReset_KeepsConfiguration(t *testing.T) {
	build := func() *Validator {
		v := New(nil, WithMessages(map[string]string{"min": "{title} below {0}"})).
			AddConstraintFunc("min", minInt)
		v.AddField("age", "Age", map[string][]Option{"min": Options("18")})
		return v
	}

	used := build()
	used.Validate(NewRecord().Set("age", 3))
	used.Reset()

	if used.Data() != nil {
		t.Error("Data() not cleared by Reset")
	}
	if len(used.Errors()) != 0 {
		t.Error("Errors() not cleared by Reset")
	}
	if len(used.Constraints()) != 1 || len(used.Fields()) != 1 || len(used.Rules()) != 1 {
		t.Error("Reset dropped configuration")
	}

	fresh := build()
	record := NewRecord().Set("age", 10)

	gotOK, gotErr := used.Validate(record)
	wantOK, wantErr := fresh.Validate(record)
	if gotOK != wantOK || gotErr != wantErr {
		t.Errorf("after Reset: (%v, %v), fresh: (%v, %v)", gotOK, gotErr, wantOK, wantErr)
	}
	if !reflect.DeepEqual(used.Errors(), fresh.Errors()) {
		t.Errorf("after Reset errors %v, fresh errors %v", used.Errors(), fresh.Errors())
	}
}

func TestAddField_RulesMap(t *testing.T) {
	v := New(nil)
	err := v.AddField("port", "Port", map[string][]Option{
		"max": Options("65535"),
		"min": Options("1024"),
	})
	if err != nil {
		t.Fatalf("AddField() error = %v", err)
	}

	rules := v.Rules()["port"]
	if len(rules) != 2 || rules[0].Rule != "max" || rules[1].Rule != "min" {
		t.Errorf("Rules()[port] = %v, want max then min", rules)
	}
	for _, b := range rules {
		if b.Message != "" {
			t.Errorf("binding %s message = %q, want empty", b.Rule, b.Message)
		}
	}
	if got := v.Fields()["port"]; got != "Port" {
		t.Errorf("Fields()[port] = %q, want Port", got)
	}
}

func TestAddField_TitleDefaultsToName(t *testing.T) {
	v := New(nil)
	v.AddField("zip", "", nil)
	v.AddField("city", "City", nil)
	v.AddField("zip", "Postal code", nil)

	if got := v.Fields()["zip"]; got != "Postal code" {
		t.Errorf("Fields()[zip] = %q, want Postal code", got)
	}
	if got := v.FieldNames(); !reflect.DeepEqual(got, []string{"zip", "city"}) {
		t.Errorf("FieldNames() = %v, want [zip city]", got)
	}
}

func TestAddConstraintProvider(t *testing.T) {
	provider := ProviderFunc(func() map[string]Constraint {
		return map[string]Constraint{
			"required": ConstraintFunc(notEmpty),
			"min":      ConstraintFunc(minInt),
		}
	})

	v := New(nil).AddConstraintFunc("min", alwaysFail)
	v.AddConstraintProvider(provider)

	if len(v.Constraints()) != 2 {
		t.Fatalf("Constraints() has %d entries, want 2", len(v.Constraints()))
	}
	if !v.Constraints()["min"].Check(20, Options("18")...) {
		t.Error("provider did not replace the existing min constraint")
	}
}

func TestAddError(t *testing.T) {
	v := New(NewRecord().Set("name", "gopher"))
	v.AddError("name", "taken")

	if got := v.Errors()["name"]; got != "taken" {
		t.Errorf("Errors()[name] = %q, want taken", got)
	}

	ve, ok := AsValidationError(v.Err())
	if !ok {
		t.Fatal("Err() is not a ValidationError")
	}
	if ve.Failures[0].Rule != "" {
		t.Errorf("manual error rule = %q, want empty", ve.Failures[0].Rule)
	}
}

func TestErr_Ordering(t *testing.T) {
	v := New(nil).AddConstraintFunc("fail", alwaysFail)
	for _, f := range []string{"a", "b", "c"} {
		v.AddField(f, "", nil)
		v.AddRule(f, "fail", "{field} failed")
	}

	if v.Err() != nil {
		t.Errorf("Err() = %v before validation, want nil", v.Err())
	}

	v.Validate(NewRecord().Set("c", 1).Set("a", 1).Set("b", 1))
	v.AddError("manual", "added")
	v.AddError("extra", "added")

	ve, ok := AsValidationError(v.Err())
	if !ok {
		t.Fatal("Err() is not a ValidationError")
	}

	var fields []string
	for _, f := range ve.Failures {
		fields = append(fields, f.Field)
	}
	want := []string{"c", "a", "b", "extra", "manual"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("failure order = %v, want %v", fields, want)
	}
	if ve.Failures[0].Rule != "fail" {
		t.Errorf("Failures[0].Rule = %q, want fail", ve.Failures[0].Rule)
	}
}

func TestEvaluate_IsIndependent(t *testing.T) {
	v := New(nil).AddConstraintFunc("min", minInt)
	v.AddField("age", "Age", nil)
	v.AddRule("age", "min", "{title} must be at least {0}", StringOption("18"))

	got, err := v.Evaluate(NewRecord().Set("age", 15))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if got["age"] != "Age must be at least 18" {
		t.Errorf("Evaluate()[age] = %q", got["age"])
	}
	if v.Data() != nil || len(v.Errors()) != 0 {
		t.Error("Evaluate changed stored state")
	}

	got, err = v.Evaluate(NewRecord().Set("age", 30))
	if err != nil || len(got) != 0 {
		t.Errorf("Evaluate({age: 30}) = %v, %v; want empty, nil", got, err)
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	v := New(nil).AddConstraintFunc("min", minInt)
	v.AddField("age", "Age", nil)
	v.AddRule("age", "min", "{title} must be at least {0}", StringOption("18"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(age int) {
			defer wg.Done()
			got, err := v.Evaluate(NewRecord().Set("age", age))
			if err != nil {
				t.Errorf("Evaluate() error = %v", err)
				return
			}
			if fails := age < 18; fails != (len(got) == 1) {
				t.Errorf("age %d: errors %v", age, got)
			}
		}(i * 2)
	}
	wg.Wait()
}

func TestClone(t *testing.T) {
	v := New(nil).AddConstraintFunc("min", minInt)
	v.AddField("age", "Age", nil)
	v.AddRule("age", "min", "{title} must be at least {0}", StringOption("18"))
	v.Validate(NewRecord().Set("age", 3))

	c := v.Clone()
	if c.Data() != nil || len(c.Errors()) != 0 {
		t.Error("Clone copied record state")
	}
	if !reflect.DeepEqual(c.Rules(), v.Rules()) || !reflect.DeepEqual(c.Fields(), v.Fields()) {
		t.Error("Clone lost configuration")
	}

	c.AddField("name", "", nil)
	if _, ok := v.Fields()["name"]; ok {
		t.Error("Clone shares field registry with original")
	}

	ok, err := c.Validate(NewRecord().Set("age", 30))
	if err != nil || !ok {
		t.Errorf("clone Validate() = %v, %v; want true, nil", ok, err)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	v := New(nil, WithLogger(logger)).AddConstraintFunc("fail", alwaysFail)
	v.AddField("name", "", nil)
	v.AddRule("name", "fail", "bad")
	v.AddRule("name", "fail", "{field} bad")
	v.Validate(NewRecord().Set("name", "x"))

	out := buf.String()
	for _, want := range []string{"rule replaced", "rule failed", "field=name", "rule=fail"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
