package typer

import "testing"

func TestParseEraseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    EraseStyle
		wantErr bool
	}{
		{"backspace", EraseBackspace, false},
		{"select-back", EraseSelectBack, false},
		{"select-all", EraseSelectAll, false},
		{"clear", EraseClear, false},
		{"", EraseSelectAll, false},
		{"delete", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEraseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEraseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseEraseStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAction(t *testing.T) {
	if a, err := ParseAction(""); err != nil || a != ActionTyping {
		t.Errorf("ParseAction(\"\") = %v, %v", a, err)
	}
	if a, err := ParseAction("erasing"); err != nil || a != ActionErasing {
		t.Errorf("ParseAction(erasing) = %v, %v", a, err)
	}
	if _, err := ParseAction("bouncing"); err == nil {
		t.Error("ParseAction accepted unknown action")
	}
}

func TestDefaultOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	opts.Text = []string{"hello"}
	specs, err := opts.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("default options produced %d fade specs, want 0", len(specs))
	}
}

func TestValidateNormalizesFade(t *testing.T) {
	opts := DefaultOptions()
	opts.Text = []string{"hello"}
	opts.Fade = "2ws"
	specs, err := opts.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(specs) != 1 || specs[0].Key != "faded-2ws" {
		t.Errorf("specs = %+v", specs)
	}
}
