package core

import (
	"os"
	"testing"
)

func TestRecordPool(t *testing.T) {
	r1 := GetRecord()
	if r1 == nil {
		t.Fatal("GetRecord() returned nil")
	}

	if len(r1.Fields) != 0 {
		t.Errorf("Expected empty fields, got %d", len(r1.Fields))
	}
	if r1.Time.IsZero() {
		t.Error("Expected record time to be stamped")
	}
	if r1.Process != os.Getpid() {
		t.Errorf("Expected process id %d, got %d", os.Getpid(), r1.Process)
	}

	r1.Channel = "binary_system.system"
	r1.Message = "test"
	r1.Fields = append(r1.Fields, Field{Key: "test", Str: "value"})

	PutRecord(r1)

	r2 := GetRecord()
	if r2 == nil {
		t.Fatal("GetRecord() returned nil after PutRecord()")
	}

	if r2.Channel != "" {
		t.Errorf("Expected empty channel after pool reset, got %q", r2.Channel)
	}
	if r2.Message != "" {
		t.Errorf("Expected empty message after pool reset, got %q", r2.Message)
	}
	if len(r2.Fields) != 0 {
		t.Errorf("Expected empty fields after pool reset, got %d", len(r2.Fields))
	}
}

func TestPutRecord_Nil(t *testing.T) {
	PutRecord(nil) // must not panic
}

func TestGetCaller(t *testing.T) {
	caller := GetCaller(0)
	if !caller.Defined {
		t.Fatal("GetCaller() returned undefined CallerInfo")
	}

	if caller.File == "" {
		t.Error("Expected non-empty file")
	}
	if caller.ShortFile == "" {
		t.Error("Expected non-empty short file")
	}
	if caller.Line == 0 {
		t.Error("Expected non-zero line number")
	}
	if caller.Function == "" {
		t.Error("Expected non-empty function name")
	}
}

func TestGetCaller_TooDeep(t *testing.T) {
	caller := GetCaller(500)
	if caller.Defined {
		t.Error("Expected undefined CallerInfo for unreachable frame")
	}
}

func BenchmarkGetRecord(b *testing.B) {
	for i := 0; i < b.N; i++ {
		r := GetRecord()
		PutRecord(r)
	}
}

func BenchmarkGetRecordWithFields(b *testing.B) {
	for i := 0; i < b.N; i++ {
		r := GetRecord()
		r.Channel = "observer.observer"
		r.Message = "test message"
		r.Level = InfoLevel
		r.Fields = append(r.Fields, Field{Key: "key1", Str: "value1"})
		r.Fields = append(r.Fields, Field{Key: "key2", Int64: 42})
		PutRecord(r)
	}
}
