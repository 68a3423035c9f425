package cli

import (
	"strconv"

	"github.com/spf13/pflag"
)

// reflectionFlag binds --enable-reflection and --no-reflection to one bool,
// so whichever appears last on the command line decides.
type reflectionFlag struct {
	enabled *bool
	negate  bool
}

func (f *reflectionFlag) Set(value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*f.enabled = v != f.negate
	return nil
}

func (f *reflectionFlag) String() string {
	if f.enabled == nil {
		return strconv.FormatBool(f.negate)
	}
	return strconv.FormatBool(*f.enabled != f.negate)
}

func (f *reflectionFlag) Type() string {
	return "bool"
}

func addReflectionFlags(flags *pflag.FlagSet) {
	enabled := true
	enable := flags.VarPF(&reflectionFlag{enabled: &enabled}, "enable-reflection", "",
		"Enable reflection agent for better performance")
	enable.NoOptDefVal = "true"
	disable := flags.VarPF(&reflectionFlag{enabled: &enabled, negate: true}, "no-reflection", "",
		"Disable reflection agent")
	disable.NoOptDefVal = "true"
}
