// Package rulebook holds the static platform requirements that .ioc
// configurations are validated against. The tables are process-wide
// constants and are never mutated after init.
package rulebook

// Severity classifies a finding produced by a failed check.
// Errors fail the validation run; warnings are advisory.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Expectation is an exact-match requirement for a single .ioc key.
// Comparison is case-sensitive string equality; a missing key compares
// as the empty string.
type Expectation struct {
	Key      string
	Expected string
	Label    string
	Severity Severity
}

// MismatchTemplate renders the finding message for a failed Expectation.
// Placeholders are substituted with fasttemplate.
const MismatchTemplate = "{{label}}: Expected {{expected}}, found '{{found}}'"

const (
	TmplLabel    = "label"
	TmplExpected = "expected"
	TmplFound    = "found"
)

// DMA transfer-mode requirements for the UART and ADC streams. UART RX and
// ADC must run circular (auto-restarting) buffers; UART TX is one-shot.
var DMA = []Expectation{
	{Key: "Dma.USART2_RX.0.Mode", Expected: "CIRCULAR", Label: "UART RX DMA mode", Severity: SeverityError},
	{Key: "Dma.USART2_TX.1.Mode", Expected: "NORMAL", Label: "UART TX DMA mode", Severity: SeverityWarning},
	{Key: "Dma.ADC1.0.Mode", Expected: "CIRCULAR", Label: "ADC DMA mode", Severity: SeverityError},
}

// Interrupts holds the NVIC priority requirements for the DMA stream
// interrupt. Values are compared as strings, exactly as they appear in
// the .ioc file.
var Interrupts = []Expectation{
	{Key: "NVIC.DMA2_Stream0_IRQn.0.PreemptionPriority", Expected: "5", Label: "DMA preemption priority", Severity: SeverityWarning},
	{Key: "NVIC.DMA2_Stream0_IRQn.0.SubPriority", Expected: "0", Label: "DMA sub-priority", Severity: SeverityWarning},
}

// Bus clock bounds in Hz, inclusive on both ends.
const (
	APB1FreqMin = 42_000_000 // CAN bit timing requires 42-50 MHz on APB1
	APB1FreqMax = 50_000_000
	APB2FreqMin = 80_000_000 // high-speed peripherals
	APB2FreqMax = 100_000_000
)

// Keys consumed by the clock, CAN and code-generation checks.
const (
	KeyAPB1Freq = "RCC.APB1Freq_Value"
	KeyAPB2Freq = "RCC.APB2Freq_Value"

	KeyCANMode             = "CAN1.Mode"
	KeyCANPrescaler        = "CAN1.Prescaler"
	KeyCANNoAutoRetransmit = "CAN1.NART"

	KeyKeepUserCode   = "ProjectManager.KeepUserCode"
	KeyDeletePrevious = "ProjectManager.DeletePrevious"
)

// NART ("No Automatic ReTransmission") is an inverted flag: DISABLE means
// automatic retransmission is enabled, which is what the platform needs.
const NoAutoRetransmitExpected = "DISABLE"

// CANNominalBaudrate is the platform CAN bitrate in bit/s. The prescaler
// line in the report is informational only; no check consumes this value.
const CANNominalBaudrate = 500_000
