package classifier

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/paynotify/internal/domain/classifier/parser"
)

// MockDynamicParser is a mock implementation of DynamicParser
type MockDynamicParser struct {
	mock.Mock
}

func (m *MockDynamicParser) Parse(ctx context.Context, text, countryCode string) *parser.ParsedPayment {
	args := m.Called(ctx, text, countryCode)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*parser.ParsedPayment)
}

func setupClassifierTest() (*Service, *MockDynamicParser) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dynamic := new(MockDynamicParser)
	svc := NewService(parser.NewRouter(logger), dynamic, logger)
	return svc, dynamic
}

func TestService_Classify_DynamicWins(t *testing.T) {
	svc, dynamic := setupClassifierTest()
	text := "Recibiste S/ 50.00 de Juan Perez via Yape"

	fromDynamic := &parser.ParsedPayment{
		Amount: 50, Sender: "Juan Perez", Source: "yape", PatternID: "abc",
	}
	dynamic.On("Parse", mock.Anything, text, "PE").Return(fromDynamic).Once()

	got, err := svc.Classify(context.Background(), text, "PE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.PatternID, "dynamic result must win over static parsers")
	assert.Equal(t, "PEN", got.Currency, "country currency attached when the pattern sets none")
	dynamic.AssertExpectations(t)
}

func TestService_Classify_StaticFallback(t *testing.T) {
	svc, dynamic := setupClassifierTest()
	text := "Recibiste S/ 50.00 de Juan Perez via Yape"

	dynamic.On("Parse", mock.Anything, text, "PE").Return(nil).Once()

	got, err := svc.Classify(context.Background(), text, "PE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 50.0, got.Amount)
	assert.Equal(t, "Juan Perez", got.Sender)
	assert.Equal(t, parser.SourceYape, got.Source)
	assert.Equal(t, "PEN", got.Currency)
	assert.Empty(t, got.PatternID, "static results carry no pattern id")
	dynamic.AssertExpectations(t)
}

func TestService_Classify_RejectionShortCircuits(t *testing.T) {
	svc, dynamic := setupClassifierTest()

	tests := []string{
		"Enviaste S/ 30.00 a Maria Lopez",
		"Aprovecha 20% de descuento, paga con Yape",
		"Hola, ¿cómo estás?",
		"",
		"   ",
	}

	for _, text := range tests {
		got, err := svc.Classify(context.Background(), text, "PE")
		require.NoError(t, err, text)
		assert.Nil(t, got, text)
	}

	// Rejected texts never reach the pattern engine.
	dynamic.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Classify_UnknownCountryGeneric(t *testing.T) {
	svc, dynamic := setupClassifierTest()
	text := "Recibiste S/ 999 de Rosa"

	dynamic.On("Parse", mock.Anything, text, "ZZ").Return(nil).Once()

	got, err := svc.Classify(context.Background(), text, "ZZ")
	require.NoError(t, err)
	// Unknown country still goes through the generic symbol scan.
	require.NotNil(t, got)
	assert.Equal(t, 999.0, got.Amount)
	assert.Equal(t, "Rosa", got.Sender)
	dynamic.AssertExpectations(t)
}

func TestService_Classify_NilDynamicEngine(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(parser.NewRouter(logger), nil, logger)

	got, err := svc.Classify(context.Background(), "Recibiste S/ 20 de Ana via Yape", "PE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 20.0, got.Amount)
}

func TestService_Classify_TrimsInput(t *testing.T) {
	svc, dynamic := setupClassifierTest()
	trimmed := "Recibiste S/ 20 de Ana via Yape"

	dynamic.On("Parse", mock.Anything, trimmed, "PE").Return(nil).Once()

	got, err := svc.Classify(context.Background(), "  "+trimmed+"  \n", "PE")
	require.NoError(t, err)
	require.NotNil(t, got)
	dynamic.AssertExpectations(t)
}

func TestService_Classify_DynamicCurrencyKept(t *testing.T) {
	svc, dynamic := setupClassifierTest()
	text := "Recibiste S/ 50.00 de Juan Perez via Yape"

	fromDynamic := &parser.ParsedPayment{Amount: 50, Sender: "Juan", Source: "yape", Currency: "USD"}
	dynamic.On("Parse", mock.Anything, text, "PE").Return(fromDynamic).Once()

	got, err := svc.Classify(context.Background(), text, "PE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "USD", got.Currency, "a currency set by the pattern is never overwritten")
	dynamic.AssertExpectations(t)
}
