package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"fasttextd/internal/common/fsutil"
	"fasttextd/internal/fasttext"
)

type inspectFlags struct {
	words   []string
	predict string
	k       int
}

func newInspectCmd() *cobra.Command {
	var f inspectFlags
	cmd := &cobra.Command{
		Use:   "inspect <prefix>",
		Short: "Load prefix.bin (and prefix.vec when present) and print a summary",
		Example: "  fasttextd inspect ~/models/fasttext/cc.ru.300 --word златом\n" +
			"  fasttextd inspect lid.176 --predict 'Привет' -k 3",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], f)
		},
	}
	cmd.Flags().StringSliceVar(&f.words, "word", nil, "Look up a word (repeatable)")
	cmd.Flags().StringVar(&f.predict, "predict", "", "Predict labels for this text")
	cmd.Flags().IntVarP(&f.k, "top-k", "k", 1, "Number of labels to predict")
	return cmd
}

func runInspect(cmd *cobra.Command, prefix string, f inspectFlags) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	prefix, err = fsutil.ExpandHome(prefix)
	if err != nil {
		return err
	}
	prefix = strings.TrimSuffix(prefix, ".bin")
	vec := prefix + ".vec"
	if !fsutil.IsFile(vec) {
		vec = ""
	}
	m, err := fasttext.OpenFiles(eng, prefix+".bin", vec)
	if err != nil {
		return err
	}
	defer m.Close()

	dim, err := m.Dimension()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	err = m.WithDictionary(func(d fasttext.Dictionary) error {
		fmt.Fprintf(out, "model:      %s.bin\n", prefix)
		fmt.Fprintf(out, "vectors:    %t\n", m.HasVectors())
		fmt.Fprintf(out, "dimension:  %d\n", dim)
		fmt.Fprintf(out, "vocabulary: %d\n", d.Count())
		for _, w := range f.words {
			if i, ok := d.IndexOf(w); ok {
				fmt.Fprintf(out, "word %q: index %d\n", w, i)
			} else {
				fmt.Fprintf(out, "word %q: not in vocabulary\n", w)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if f.predict == "" {
		return nil
	}
	preds, err := m.Predict(f.predict, f.k)
	if err != nil {
		return err
	}
	for _, p := range preds {
		fmt.Fprintf(out, "%s\t%.4f\t%.4f\n", p.Label, p.Score, math.Exp(float64(p.Score)))
	}
	return nil
}
