package main

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sjas/adlint-sub000/analysis/ctype"
	"github.com/sjas/adlint-sub000/analysis/domain"
	"github.com/sjas/adlint-sub000/analysis/interp"
	"github.com/sjas/adlint-sub000/utils"
)

var (
	opts = utils.Opts()
	task = opts.Task()
)

func readScript(path string) (string, []byte, error) {
	if path == "-" {
		src, err := io.ReadAll(os.Stdin)
		return "<stdin>", src, errors.Wrap(err, "reading standard input")
	}
	src, err := os.ReadFile(path)
	return path, src, errors.Wrapf(err, "reading %s", path)
}

func main() {
	utils.ParseArgs()

	name, src, err := readScript(utils.ScriptPath())
	if err != nil {
		log.Fatalln(err)
	}

	model, err := ctype.ParseModel(opts.Model())
	if err != nil {
		log.Fatalln(err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(opts.LogLevel())
	if err != nil {
		log.Fatalln(errors.Wrap(err, "-log-level"))
	}
	logger.SetLevel(level)
	opts.OnVerbose(func() {
		logger.SetLevel(logrus.DebugLevel)
	})

	p := pipeline{
		name: name,
		src:  src,
		f:    domain.NewFactory(domain.Config{LogicalShr: opts.LogicalShr()}),
		cfg: interp.Config{
			Model:         model,
			MaxIterations: opts.MaxIterations(),
			Logger:        logger,
		},
		format: opts.OutputFormat(),
	}

	switch {
	case task.IsTrace():
		err = p.trace(os.Stdout)
	case task.IsDot():
		err = p.dot(os.Stdout, opts.ImageFormat(), opts.Output())
	default:
		err = p.eval(os.Stdout)
	}
	if err != nil {
		log.Fatalln(err)
	}

	opts.OnVerbose(func() {
		p.stats(os.Stderr)
	})
}
