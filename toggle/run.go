// Package toggle implements the program pipeline around the code block
// command: it reads a document, applies the toggle to the selected blocks and
// writes the result out.
package toggle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fenced/codeblock"
	"fenced/config"
	"fenced/dom"
	"fenced/schema"
	"fenced/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("toggle")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")

	ids := cmd.StringSlice("select")
	if len(ids) == 0 {
		return errors.New("no blocks have been selected, use --select")
	}

	language := cmd.String("language")
	if len(language) == 0 {
		language = env.Cfg.Document.DefaultLanguage
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Strings("selected", ids))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("input/%s", filepath.Base(src)), src)
	}

	doc, err := readDocument(src, log)
	if err != nil {
		return err
	}

	sel, err := selectBlocks(doc, env.Cfg.Document.SelectorAttr, ids)
	if err != nil {
		return err
	}

	tgl := codeblock.NewCommand(doc, schema.NewGuard(schema.Default()), language, log)
	tgl.SetSelection(sel)

	if !tgl.Enabled {
		return errors.New("code block toggle cannot be applied to the selection")
	}
	if err := tgl.Execute(); err != nil {
		return fmt.Errorf("unable to toggle code block: %w", err)
	}
	log.Debug("Toggle applied", zap.Bool("value", tgl.Value))

	if env.Rpt != nil {
		// debug mode, make sure resulting tree is sound
		if err := dom.CheckInvariants(doc); err != nil {
			return fmt.Errorf("resulting document violates tree invariants: %w", err)
		}
		env.Rpt.StoreData("dump/tree.txt", []byte(doc.String()))
	}
	return writeDocument(doc, dst, env, log)
}

// Tree reads a document and prints its internal tree representation, either
// to a file or to STDOUT.
func Tree(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dump")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	doc, err := readDocument(src, log)
	if err != nil {
		return err
	}

	out := os.Stdout
	if fname := cmd.Args().Get(1); len(fname) > 0 {
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}
	_, err = fmt.Fprint(out, doc.String())
	return err
}

func readDocument(src string, log *zap.Logger) (*dom.Document, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("unable to open input document: %w", err)
	}
	defer f.Close()

	doc, err := dom.ReadDocument(f, log)
	if err != nil {
		return nil, fmt.Errorf("unable to read input document '%s': %w", src, err)
	}
	return doc, nil
}

// selectBlocks resolves selector attribute values to document blocks. All
// requested blocks must exist.
func selectBlocks(doc *dom.Document, attr string, ids []string) (*dom.Selection, error) {
	blocks := make([]*dom.Node, 0, len(ids))
	for _, id := range ids {
		b := doc.BlockByAttr(attr, id)
		if b == nil {
			return nil, fmt.Errorf("no block with %s=%q in the document", attr, id)
		}
		blocks = append(blocks, b)
	}
	return dom.SelectBlocks(blocks...), nil
}

func writeDocument(doc *dom.Document, dst string, env *state.LocalEnv, log *zap.Logger) error {
	name := slug.Make(doc.Title())
	if len(name) == 0 {
		name = env.Cfg.Document.FallbackName
	}
	name = config.CleanFileName(name) + ".xml"

	path := filepath.Join(dst, name)
	if _, err := os.Stat(path); err == nil && !env.Overwrite {
		return fmt.Errorf("destination file already exists (%s), use --overwrite", path)
	}
	if err := os.MkdirAll(dst, 0700); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return fmt.Errorf("unable to serialize document: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write output document: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("output/%s", name), buf.Bytes())
	}
	log.Info("Document written", zap.String("file", path))
	return nil
}
