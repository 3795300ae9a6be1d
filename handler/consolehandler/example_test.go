package consolehandler_test

import (
	"fmt"
	"os"
	"time"

	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/formatter"
	"github.com/elisa-suite/logrouter/handler/consolehandler"
)

// Create a console sink that accepts WARNING and above.
func ExampleNewConsoleHandler() {
	p, err := formatter.NewPattern("%(levelname)s: %(message)s", "")
	if err != nil {
		panic(err)
	}

	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    os.Stdout,
		Level:     core.WarningLevel,
		Formatter: p,
	})
	defer h.Close()

	rec := &core.Record{
		Time:    time.Now(),
		Level:   core.WarningLevel,
		Channel: "binary_system.system",
		Message: "morphology changed to over-contact",
	}
	if err := h.Handle(rec); err != nil {
		fmt.Println("handle:", err)
	}
	// Output:
	// WARNING: morphology changed to over-contact
}
