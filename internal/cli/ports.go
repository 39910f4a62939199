package cli

import (
	"fmt"

	"github.com/werdumagen/thermolog/internal/discover"
	"github.com/werdumagen/thermolog/internal/serialport"
)

// portsCommand prints candidates in probe order.
func portsCommand() error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	hostReported, listErr := serialport.List()
	if listErr != nil {
		fmt.Println(warnStyle.Render("port enumeration failed: " + listErr.Error()))
	}

	candidates := discover.Enumerate(hostReported, settings.Probe.Prefix, settings.Probe.MaxIndex)
	if len(candidates) == 0 {
		fmt.Println(dimStyle.Render("no candidate ports"))
		return nil
	}

	for _, c := range candidates {
		if c.HostReported {
			fmt.Println(okStyle.Render("• " + c.Name))
		} else {
			fmt.Println(dimStyle.Render("  " + c.Name))
		}
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d candidates, host-reported marked •", len(candidates))))
	return nil
}
