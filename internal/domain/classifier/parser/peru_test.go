package parser

import "testing"

func TestPeruParser_Yape(t *testing.T) {
	p := NewPeruParser()

	tests := []struct {
		text   string
		amount float64
		sender string
	}{
		{"Yape! Juan Perez te envió un pago por S/ 50", 50, "Juan Perez"},
		{"Recibiste S/ 50.00 de Juan Perez via Yape", 50, "Juan Perez"},
		{"Recibiste S/ 120.50 de Maria del Carmen por Yape", 120.50, "Maria del Carmen"},
		{"Rosa Quispe te yapeó S/ 25.50", 25.50, "Rosa Quispe"},
	}

	for _, tc := range tests {
		got := p.Parse(tc.text)
		if got == nil {
			t.Errorf("Parse(%q) = nil, want payment", tc.text)
			continue
		}
		if got.Amount != tc.amount {
			t.Errorf("Parse(%q) amount = %v, want %v", tc.text, got.Amount, tc.amount)
		}
		if got.Sender != tc.sender {
			t.Errorf("Parse(%q) sender = %q, want %q", tc.text, got.Sender, tc.sender)
		}
		if got.Source != SourceYape {
			t.Errorf("Parse(%q) source = %q, want yape", tc.text, got.Source)
		}
	}
}

func TestPeruParser_YapeNoSender(t *testing.T) {
	got := NewPeruParser().Parse("Confirmación de pago Yape por S/ 80.00")
	if got == nil {
		t.Fatal("expected a payment")
	}
	if got.Amount != 80 {
		t.Errorf("amount = %v, want 80", got.Amount)
	}
	if got.Sender != SenderUnknown {
		t.Errorf("sender = %q, want unknown sentinel", got.Sender)
	}
}

func TestPeruParser_Plin(t *testing.T) {
	p := NewPeruParser()

	tests := []struct {
		text   string
		amount float64
		sender string
	}{
		{"¡Recibiste un Plin! Maria Lopez te envió S/ 20", 20, "Maria Lopez"},
		{"Carlos Diaz te envió S/ 35.90 por Plin", 35.90, "Carlos Diaz"},
		{"Recibiste S/ 15 de Ana Torres via Plin", 15, "Ana Torres"},
	}

	for _, tc := range tests {
		got := p.Parse(tc.text)
		if got == nil {
			t.Errorf("Parse(%q) = nil, want payment", tc.text)
			continue
		}
		if got.Amount != tc.amount || got.Sender != tc.sender {
			t.Errorf("Parse(%q) = {%v %q}, want {%v %q}",
				tc.text, got.Amount, got.Sender, tc.amount, tc.sender)
		}
		if got.Source != SourcePlin {
			t.Errorf("Parse(%q) source = %q, want plin", tc.text, got.Source)
		}
	}
}

func TestPeruParser_BankDeposit(t *testing.T) {
	p := NewPeruParser()

	tests := []struct {
		text   string
		amount float64
		sender string
	}{
		{"Depósito por S/ 200 de Juan Perez", 200, "Juan Perez"},
		{"Transferencia recibida de Luis Gomez por S/ 300.00", 300, "Luis Gomez"},
		{"BCP: Pedro Castillo te transfirió S/ 120.00", 120, "Pedro Castillo"},
	}

	for _, tc := range tests {
		got := p.Parse(tc.text)
		if got == nil {
			t.Errorf("Parse(%q) = nil, want payment", tc.text)
			continue
		}
		if got.Amount != tc.amount || got.Sender != tc.sender {
			t.Errorf("Parse(%q) = {%v %q}, want {%v %q}",
				tc.text, got.Amount, got.Sender, tc.amount, tc.sender)
		}
		if got.Source != SourceBankDeposit {
			t.Errorf("Parse(%q) source = %q, want bank-deposit", tc.text, got.Source)
		}
	}
}

func TestPeruParser_LocalGenericFallback(t *testing.T) {
	p := NewPeruParser()

	got := p.Parse("Pago recibido S/ 35.00 de Maria Ines")
	if got == nil {
		t.Fatal("expected a payment")
	}
	if got.Amount != 35 {
		t.Errorf("amount = %v, want 35", got.Amount)
	}
	if got.Sender != "Maria Ines" {
		t.Errorf("sender = %q, want Maria Ines", got.Sender)
	}
	if got.Source != SourceOther {
		t.Errorf("source = %q, want other", got.Source)
	}
}

func TestPeruParser_NoMatch(t *testing.T) {
	p := NewPeruParser()

	tests := []string{
		"Sin monto alguno",
		"Recibiste un saludo de Juan",
	}

	for _, text := range tests {
		if got := p.Parse(text); got != nil {
			t.Errorf("Parse(%q) = %+v, want nil", text, got)
		}
	}
}
