// Package checks runs the platform rulebook against a loaded .ioc
// configuration. The five checks are independent and always all run;
// a finding in one check never short-circuits the others.
package checks

import (
	"github.com/valyala/fasttemplate"

	"github.com/stm32-platform/ioc-check/internal/ioc"
	"github.com/stm32-platform/ioc-check/internal/report"
	"github.com/stm32-platform/ioc-check/internal/rulebook"
)

// Run executes all checks in fixed order (DMA, interrupts, clocks, CAN,
// code generation) and returns the accumulated report.
func Run(cfg *ioc.Config) *report.Report {
	c := &checker{cfg: cfg, rep: report.New()}

	c.checkDMA()
	c.checkInterrupts()
	c.checkClocks()
	c.checkCAN()
	c.checkCodeGeneration()

	return c.rep
}

type checker struct {
	cfg *ioc.Config
	rep *report.Report
}

var mismatchTmpl = fasttemplate.New(rulebook.MismatchTemplate, "{{", "}}")

func mismatchMessage(exp rulebook.Expectation, found string) string {
	return mismatchTmpl.ExecuteString(map[string]interface{}{
		rulebook.TmplLabel:    exp.Label,
		rulebook.TmplExpected: exp.Expected,
		rulebook.TmplFound:    found,
	})
}

// checkExpectations compares each expectation key against the config via
// exact string equality. Matches confirm into the section; mismatches
// become findings of the expectation's severity.
func (c *checker) checkExpectations(s *report.Section, expectations []rulebook.Expectation) {
	for _, exp := range expectations {
		found := c.cfg.Get(exp.Key)
		if found != exp.Expected {
			c.addFinding(exp.Severity, mismatchMessage(exp, found))
		} else {
			s.Confirmf("%s: %s", exp.Label, found)
		}
	}
}

func (c *checker) addFinding(severity rulebook.Severity, message string) {
	if severity == rulebook.SeverityError {
		c.rep.Errorf("%s", message)
	} else {
		c.rep.Warnf("%s", message)
	}
}

func (c *checker) checkDMA() {
	s := c.rep.AddSection("DMA Configuration")
	c.checkExpectations(s, rulebook.DMA)
}

func (c *checker) checkInterrupts() {
	s := c.rep.AddSection("Interrupt Configuration")
	c.checkExpectations(s, rulebook.Interrupts)
}

func (c *checker) checkCAN() {
	s := c.rep.AddSection("CAN Configuration")

	mode := c.cfg.Get(rulebook.KeyCANMode)
	if mode == "" {
		c.rep.Warnf("CAN1 not enabled (platform supports CAN)")
		return
	}

	// Prescaler is informational only; no pass/fail.
	if prescaler := c.cfg.Get(rulebook.KeyCANPrescaler); prescaler != "" {
		s.Confirmf("CAN prescaler configured: %s", prescaler)
	}

	// NART is inverted: DISABLE means auto-retransmission is enabled.
	nart := c.cfg.Get(rulebook.KeyCANNoAutoRetransmit)
	if nart == rulebook.NoAutoRetransmitExpected {
		s.Confirmf("CAN auto-retransmit: ENABLED (NART=DISABLE)")
	} else {
		c.rep.Warnf("CAN auto-retransmit should be enabled (NART=DISABLE), found NART=%s", nart)
	}
}

func (c *checker) checkCodeGeneration() {
	s := c.rep.AddSection("Code Generation Settings")

	if c.cfg.Get(rulebook.KeyKeepUserCode) != "true" {
		c.rep.Errorf("Code generation setting 'KeepUserCode' must be 'true' for platform integration")
	} else {
		s.Confirmf("Keep user code: Enabled")
	}

	if c.cfg.Get(rulebook.KeyDeletePrevious) == "true" {
		c.rep.Warnf("Code generation 'DeletePrevious' is enabled - may remove platform files")
	}
}
