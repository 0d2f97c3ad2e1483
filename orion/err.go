package orion

import (
	"fmt"
	"log/slog"
	"os"
)

// Handle logs err and terminates the process with a failure exit
// code if err is not nil.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		slog.Error(fmt.Sprintf(desc, args...), slog.Any("err", err))
		os.Exit(1)
	}
}
