package cli

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var flagPredictors = map[string]complete.Predictor{
	"commission": predict.Set{"none", "percentage", "fixed-net-amount", "yes", "no"},
	"o":          predict.Set{"markdown", "json", "plain"},
	"config":     predict.Files("*.yaml"),
}

// Completion describes cmds for shell completion. Install it with
// COMP_INSTALL=1 rulo.
func Completion(global *flag.FlagSet, cmds []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagsOf(global),
	}
	for _, c := range cmds {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flagsOf(fs)}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func flagsOf(fs *flag.FlagSet) map[string]complete.Predictor {
	out := map[string]complete.Predictor{}
	if fs == nil {
		return out
	}
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			out[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			out[f.Name] = predict.Nothing
			return
		}
		out[f.Name] = predict.Something
	})
	return out
}
