package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/pterm/pterm"

	ghierrors "github.com/arthur-debert/ghi/pkg/errors"
	"github.com/arthur-debert/ghi/pkg/logging"
)

// PrintError reports err on w behind pterm's error prefix, followed by its
// details, one per line
func PrintError(w io.Writer, err error) {
	logger := logging.GetLogger("cli")
	logger.Debug().
		Str("code", string(ghierrors.GetErrorCode(err))).
		Err(err).
		Msg("Command failed")

	fmt.Fprint(w, pterm.Error.Sprintln(err.Error()))

	details := ghierrors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s: %v\n", key, details[key])
	}
}
