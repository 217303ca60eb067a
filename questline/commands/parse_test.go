package commands

import "testing"

func TestParseQuestRef(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "plain number", raw: "12", want: 12},
		{name: "hash prefix", raw: "#12", want: 12},
		{name: "surrounding spaces", raw: "  #7 ", want: 7},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-3", wantErr: true},
		{name: "not a number", raw: "abc", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestRef(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuestRef(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseQuestRef(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
