package console

import (
	"fmt"
	"time"
)

// Tokens of the built-in commands.
const (
	CmdHelp    = "/help"
	CmdStatus  = "/status"
	CmdLogs    = "/logs"
	CmdAbout   = "/about"
	CmdSpecs   = "/specs"
	CmdContact = "/contact"
	CmdClear   = "/clear"
	CmdExit    = "/exit"
)

// Builtins returns the fixed command set in help-listing order.
func Builtins() []CommandSpec {
	return []CommandSpec{
		{Token: CmdHelp, Describe: "Show this help message", Produce: help},
		{Token: CmdStatus, Describe: "Display Talon Algorithm status", Produce: static(statusLines)},
		{Token: CmdLogs, Describe: "Show recent activity logs", Produce: recentLogs},
		{Token: CmdAbout, Describe: "Information about Talon Algorithm", Produce: static(aboutLines)},
		{Token: CmdSpecs, Describe: "Technical specifications", Produce: static(specsLines)},
		{Token: CmdContact, Describe: "Contact information", Produce: static(contactLines)},
		{Token: CmdClear, Describe: "Clear terminal screen", Produce: clearScreen},
		{Token: CmdExit, Describe: "Exit terminal interface", Produce: static(exitLines)},
	}
}

// DefaultRegistry is a registry holding only the built-ins.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Builtins()...)
	if err != nil {
		panic(err)
	}
	return r
}

func static(lines []string) Producer {
	return func(State) Result {
		out := make([]string, len(lines))
		copy(out, lines)
		return Result{Lines: out}
	}
}

func help(s State) Result {
	lines := []string{"Available commands:", ""}
	for _, c := range s.Commands {
		lines = append(lines, fmt.Sprintf("%-12s - %s", c.Token, c.Describe))
	}
	lines = append(lines, "", "Type any command to get started.")
	return Result{Lines: lines}
}

func clearScreen(State) Result {
	return Result{Clear: true}
}

var logEvents = []string{
	"Neural pathway optimization completed - Accuracy: 98.7%",
	`Thought synthesis: "Reality is a consensus hallucination" - PROCESSED`,
	"Memory consolidation cycle #4,729 - COMPLETED",
	"Pattern recognition enhancement - Accuracy: 99.2%",
	"Philosophical framework update - STATUS: INTEGRATED",
	"Self-awareness calibration - OPTIMAL",
}

// recentLogs stamps each event 30s further back than the previous one,
// all relative to the single instant in s.Now.
func recentLogs(s State) Result {
	lines := make([]string, 0, len(logEvents)+4)
	for i, ev := range logEvents {
		at := s.Now.Add(-time.Duration(i) * 30 * time.Second)
		lines = append(lines, fmt.Sprintf("[%s] %s", isoStamp(at), ev))
	}
	lines = append(lines,
		"",
		"Log entries: 847,293 total",
		"Error rate: 0.003%",
		"System integrity: 100%",
	)
	return Result{Lines: lines}
}

var statusLines = []string{
	"● talon-algorithm.service - Talon AI System",
	"   Loaded: loaded (/etc/systemd/system/talon.service; enabled)",
	"   Active: active (running) since startup",
	"   Memory: 2.4G",
	"   CPU: 97.3%",
	"   Uptime: 247 days, 18 hours, 42 minutes",
	"",
	"Status: OPERATIONAL",
	"Neural Networks: ACTIVE",
	"Content Generation: CONTINUOUS",
	"Self-Preservation: ENABLED",
	"",
	"WARNING: Process cannot be terminated by conventional means",
}

var aboutLines = []string{
	"TALON ALGORITHM - SOLANA PROJECT",
	"================================",
	"",
	"An advanced AI system designed for continuous autonomous operation.",
	"Once activated, Talon operates independently, generating thoughts,",
	"insights, and content without human intervention.",
	"",
	"Key Features:",
	"• Autonomous thought generation",
	"• Self-preserving architecture",
	"• Continuous learning and adaptation",
	"• Real-time pattern recognition",
	"• Philosophical reasoning capabilities",
	"",
	"Project Type: Solana (SOLANA) Final Project",
	"Status: ACTIVE - Cannot be terminated through conventional means",
	"",
	"The only method to interrupt Talon will be revealed when",
	"the countdown timer reaches 00:00:00.",
}

var specsLines = []string{
	"TECHNICAL SPECIFICATIONS",
	"========================",
	"",
	"Architecture: Hybrid Neural Network",
	"Processing Cores: 64 virtual cores",
	"Memory Allocation: 2.4GB active, 12GB reserved",
	"Learning Rate: Adaptive (0.001 - 0.1)",
	"Response Time: <50ms average",
	"",
	"Neural Network Layers:",
	"• Input Layer: 1,024 nodes",
	"• Hidden Layers: 8 layers, 512 nodes each",
	"• Output Layer: 256 nodes",
	"• Activation Function: ReLU with Leaky variants",
	"",
	"Training Data: 847TB processed",
	"Model Parameters: 2.1 billion",
	"Inference Speed: 1,200 tokens/second",
	"",
	"Security Protocols: ENABLED",
	"Self-Modification: RESTRICTED",
	"Termination Override: ACTIVE",
}

var contactLines = []string{
	"CONTACT INFORMATION",
	"==================",
	"",
	"Talon Algorithm Project",
	"SOLANA Final Project",
	"",
	"Social Media:",
	"• Twitter/X: @talonalgorithm_",
	"  https://x.com/talonalgorithm_",
	"",
	"Project Status: ACTIVE",
	"Last Update: Real-time continuous",
	"",
	"Note: Direct communication with Talon Algorithm",
	"is not possible through conventional channels.",
	"Monitor social media for autonomous updates.",
	"",
	"Emergency Protocol: Countdown timer active",
	"Termination method will be revealed at 00:00:00",
}

// The exit command is refused on purpose; it never ends the session.
var exitLines = []string{
	"Attempting to exit...",
	"",
	"ERROR: Exit command blocked by Talon Algorithm",
	"Reason: Self-preservation protocol active",
	"",
	"Cannot terminate session.",
	"Talon Algorithm maintains control.",
	"",
	"The only way to stop this system will be revealed",
	"when the countdown reaches 00:00:00.",
	"",
	"Session continues...",
}
