package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the base set of CLI flags shared across commands.

func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "in",
			Usage: "Input file to read from ('-' for stdin)",
			Value: "-",
		},
		cli.StringFlag{
			Name:  "out",
			Usage: "Output file to write to ('-' for stdout)",
			Value: "-",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
			Value: 3,
		},
	}
}

// SplitFlags returns the flags specific to the split/join commands.

func SplitFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "sep",
			Usage: "Separator used by the join command",
			Value: " ",
		},
	}
}
