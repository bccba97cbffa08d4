package launcher

import (
	"fmt"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-dynstr/dynstr"
	"github.com/rony4d/go-dynstr/dynstr/quote"
	"github.com/rony4d/go-dynstr/dynstr/readbuf"
	"github.com/rony4d/go-dynstr/flags"
)

var app = flags.NewApp()

func init() {
	app.Flags = flags.CommonFlags()
	app.Commands = []cli.Command{
		{
			Name:   "split",
			Usage:  "Parse each input line as a quoted argument line and print its tokens",
			Action: splitAction,
		},
		{
			Name:   "repr",
			Usage:  "Print the input as one quoted, escaped token",
			Action: reprAction,
		},
		{
			Name:   "join",
			Usage:  "Join the command arguments with the separator",
			Flags:  flags.SplitFlags(),
			Action: joinAction,
		},
	}
}

// Launch parses flags and dispatches to the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

// readInput slurps the configured input into a fresh Buffer through the
// spare-capacity read path.
func readInput(cfg Config) (*dynstr.Buffer, error) {
	in, closeIn, err := openInput(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer closeIn()

	buf := dynstr.Empty()
	if _, err := readbuf.ReadAll(in, buf); err != nil {
		buf.Release()
		return nil, fmt.Errorf("read %s: %w", cfg.Input, err)
	}
	return buf, nil
}

// writeOutput dumps a Buffer's payload to the configured output.
func writeOutput(cfg Config, buf *dynstr.Buffer) error {
	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	if _, err := out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	return nil
}

func splitAction(ctx *cli.Context) error {
	cfg := MakeConfig(ctx)
	log := makeLogger(cfg.Logging)

	input, err := readInput(cfg)
	if err != nil {
		return err
	}
	defer input.Release()

	lines, err := quote.Split(input.Bytes(), []byte{'\n'})
	if err != nil {
		return err
	}
	defer quote.ReleaseAll(lines)

	result := dynstr.Empty()
	defer result.Release()

	for i, line := range lines {
		if line.Len() == 0 {
			continue
		}
		args, err := quote.SplitArgs(line.String())
		if err != nil {
			log.WithField("line", i+1).WithError(err).Error("cannot parse argument line")
			return err
		}
		log.WithField("line", i+1).WithField("tokens", len(args)).Debug("parsed argument line")

		for j, arg := range args {
			if j > 0 {
				if err := result.AppendString(" "); err != nil {
					quote.ReleaseAll(args)
					return err
				}
			}
			if err := quote.AppendRepr(result, arg.Bytes()); err != nil {
				quote.ReleaseAll(args)
				return err
			}
		}
		quote.ReleaseAll(args)
		if err := result.AppendString("\n"); err != nil {
			return err
		}
	}
	return writeOutput(cfg, result)
}

func reprAction(ctx *cli.Context) error {
	cfg := MakeConfig(ctx)
	log := makeLogger(cfg.Logging)

	input, err := readInput(cfg)
	if err != nil {
		return err
	}
	defer input.Release()
	log.WithField("bytes", input.Len()).Debug("input loaded")

	result := dynstr.Empty()
	defer result.Release()
	if err := quote.AppendRepr(result, input.Bytes()); err != nil {
		return err
	}
	if err := result.AppendString("\n"); err != nil {
		return err
	}
	return writeOutput(cfg, result)
}

func joinAction(ctx *cli.Context) error {
	cfg := MakeConfig(ctx)
	log := makeLogger(cfg.Logging)

	argv := []string(ctx.Args())
	joined, err := quote.Join(argv, cfg.Sep)
	if err != nil {
		return err
	}
	defer joined.Release()
	log.WithField("args", len(argv)).Debug("joined arguments")

	if err := joined.AppendString("\n"); err != nil {
		return err
	}
	return writeOutput(cfg, joined)
}
