package mobile

import (
	"encoding/json"
	"testing"
)

func unmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}

func TestExtractJSONTail(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"clean json", `{"msg":"success"}`, `{"msg":"success"}`, false},
		{"jsp preamble", "\n\n  \n{\"msg\":\"success\",\"token\":\"t\"}", `{"msg":"success","token":"t"}`, false},
		{"brace in preamble", `<b>{warn}</b>{"msg":"success"}`, `{"msg":"success"}`, false},
		{"no json at all", "<html>maintenance</html>", "", true},
		{"empty body", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONTail(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractJSONTail(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractJSONTail(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"clean json", `{"rec":[]}`, `{"rec":[]}`, false},
		{"preamble and trailer", "noise {\"rec\":[{\"dow\":\"1\"}]} trailing", `{"rec":[{"dow":"1"}]}`, false},
		{"no object", "plain text", "", true},
		{"lone open brace", "x { y", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONBody(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractJSONBody(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractJSONBody(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFlexInt(t *testing.T) {
	var day ClassDay
	if err := unmarshal(`{"dow":"3"}`, &day); err != nil {
		t.Fatalf("quoted dow: %v", err)
	}
	if day.DayOfWeek.Int() != 3 {
		t.Errorf("quoted dow = %d, want 3", day.DayOfWeek.Int())
	}

	if err := unmarshal(`{"dow":5}`, &day); err != nil {
		t.Fatalf("bare dow: %v", err)
	}
	if day.DayOfWeek.Int() != 5 {
		t.Errorf("bare dow = %d, want 5", day.DayOfWeek.Int())
	}

	if err := unmarshal(`{"dow":"x"}`, &day); err == nil {
		t.Error("non-numeric dow should fail to decode")
	}
}
