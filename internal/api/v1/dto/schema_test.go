package dto

import (
	"errors"
	"testing"
	"time"
)

func lecturerValues() map[string]any {
	payroll := "HR-0042"
	ts := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	return map[string]any{
		"user_id":    "u1",
		"name":       "Ada Lovelace",
		"email":      "ada@example.edu",
		"department": "Computer Science",
		"avatar_url": "",
		"payroll_id": &payroll,
		"created_at": ts,
		"updated_at": ts,
	}
}

func TestLecturerSchemaHidesPayrollID(t *testing.T) {
	out, err := LecturerSchema.Serialize(lecturerValues())
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if _, ok := out["payroll_id"]; ok {
		t.Error("payroll_id must not be serialized")
	}
	if out["email"] != "ada@example.edu" {
		t.Errorf("unexpected email %v", out["email"])
	}
	if out["created_at"] != "2025-01-15T09:30:00Z" {
		t.Errorf("unexpected created_at %v", out["created_at"])
	}
}

func TestSerializeRequiredField(t *testing.T) {
	values := lecturerValues()
	delete(values, "email")

	_, err := LecturerSchema.Serialize(values)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Field != "email" {
		t.Errorf("expected email to be reported, got %q", se.Field)
	}
}

func TestSerializeRequiredNilPointer(t *testing.T) {
	values := lecturerValues()
	values["name"] = (*string)(nil)

	out, err := LecturerSchema.Serialize(values)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v (output %v)", err, out)
	}
	if se.Field != "name" || se.Reason != "is required" {
		t.Errorf("unexpected error %+v", se)
	}
}

func TestSerializeTypeMismatch(t *testing.T) {
	values := lecturerValues()
	values["name"] = 42

	if _, err := LecturerSchema.Serialize(values); err == nil {
		t.Fatal("expected type error for numeric name")
	}
}

func TestSerializeDropsUndeclaredKeys(t *testing.T) {
	values := lecturerValues()
	values["password_hash"] = "secret"

	out, err := LecturerSchema.Serialize(values)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if _, ok := out["password_hash"]; ok {
		t.Error("undeclared key leaked into output")
	}
}

func TestSerializeOptionalNilPointer(t *testing.T) {
	values := lecturerValues()
	values["payroll_id"] = (*string)(nil)

	if _, err := LecturerSchema.Serialize(values); err != nil {
		t.Fatalf("nil optional pointer should serialize: %v", err)
	}

	values["department"] = (*string)(nil)
	out, err := LecturerSchema.Serialize(values)
	if err != nil {
		t.Fatalf("nil optional pointer should serialize: %v", err)
	}
	if _, ok := out["department"]; ok {
		t.Errorf("nil optional field should be omitted, got %v", out["department"])
	}
}

func TestSchemaExample(t *testing.T) {
	ex := LecturerSchema.Example()
	if _, ok := ex["payroll_id"]; ok {
		t.Error("hidden field in example")
	}
	for _, f := range []string{"user_id", "name", "email", "created_at"} {
		if _, ok := ex[f]; !ok {
			t.Errorf("example missing %s", f)
		}
	}
}
