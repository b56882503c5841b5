package version

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/anisan-cli/bgmsync/constant"
	"github.com/anisan-cli/bgmsync/icon"
	"github.com/anisan-cli/bgmsync/key"
	"github.com/anisan-cli/bgmsync/style"
	"github.com/anisan-cli/bgmsync/util"
	"github.com/spf13/viper"
)

// Notify prints a notice to out when a newer release is available.
func Notify(ctx context.Context, out io.Writer, client *http.Client) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx, client)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(out, `
%s New version is available %s %s
%s

`,
		style.Fg(style.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(constant.Repository+"/releases/tag/v"+latest),
	)
}
