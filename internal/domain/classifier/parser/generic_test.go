package parser

import "testing"

func TestParseGeneric_SymbolDetection(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		amount float64
		sender string
	}{
		{"plain dollar", "Juan te envió $ 250", 250, "Juan"},
		{"dominican peso", "Recibiste RD$ 1,500.00 de Pedro", 1500, "Pedro"},
		{"uruguayan peso", "Transferencia de $U 800 de parte de Lucia Silva", 800, "Lucia Silva"},
		{"euro", "Recibiste € 99.99 de Marco", 99.99, "Marco"},
		{"english from", "You received $ 40.00 from John Smith", 40, "John Smith"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseGeneric(tc.text, "")
			if got == nil {
				t.Fatalf("ParseGeneric(%q) = nil, want payment", tc.text)
			}
			if got.Amount != tc.amount {
				t.Errorf("amount = %v, want %v", got.Amount, tc.amount)
			}
			if got.Sender != tc.sender {
				t.Errorf("sender = %q, want %q", got.Sender, tc.sender)
			}
			if got.Source != SourceOther {
				t.Errorf("source = %q, want other", got.Source)
			}
		})
	}
}

func TestParseGeneric_SymbolHint(t *testing.T) {
	// With an explicit hint only that symbol's amounts are considered.
	got := ParseGeneric("Recibiste Bs 120.50 de Rosa", "Bs")
	if got == nil {
		t.Fatal("expected a payment")
	}
	if got.Amount != 120.50 || got.Sender != "Rosa" {
		t.Errorf("got {%v %q}, want {120.5 Rosa}", got.Amount, got.Sender)
	}

	// A hint whose symbol is absent yields no match even if another
	// currency symbol appears in the text.
	if got := ParseGeneric("Recibiste S/ 50 de Juan", "Bs"); got != nil {
		t.Errorf("hinted Bs on S/ text = %+v, want nil", got)
	}
}

func TestParseGeneric_SenderUnknown(t *testing.T) {
	got := ParseGeneric("Pago recibido por $ 75", "")
	if got == nil {
		t.Fatal("expected a payment")
	}
	if got.Amount != 75 {
		t.Errorf("amount = %v, want 75", got.Amount)
	}
	if got.Sender != SenderUnknown {
		t.Errorf("sender = %q, want unknown sentinel", got.Sender)
	}
}

func TestParseGeneric_NoSymbol(t *testing.T) {
	tests := []string{
		"Recibiste 50 conchas de Rey Triton",
		"Hola, ¿cómo estás?",
		"",
	}

	for _, text := range tests {
		if got := ParseGeneric(text, ""); got != nil {
			t.Errorf("ParseGeneric(%q) = %+v, want nil", text, got)
		}
	}
}
