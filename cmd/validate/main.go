package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "validate",
		Usage: "check shop content files",
		Commands: []*cli.Command{
			{
				Name:      "catalog",
				Usage:     "strictly decode and validate catalog files",
				ArgsUsage: "<catalog.json>...",
				Action:    validateCatalogs,
			},
			{
				Name:      "list",
				Usage:     "print the entries of a catalog",
				ArgsUsage: "<catalog.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "player",
						Aliases: []string{"p"},
						Usage:   "only show entries this character can use (randi, purim, popoi)",
					},
				},
				Action: listCatalog,
			},
		},
	}
}

func validateCatalogs(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("at least one catalog file is required", 2)
	}

	failed := 0
	for _, filename := range c.Args().Slice() {
		fmt.Fprintf(c.App.Writer, "Validating %s...\n", filename)
		if _, err := validateFile(filename); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "%v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s is valid!\n", filename)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d catalog files are invalid", failed, c.NArg())
	}
	return nil
}

func listCatalog(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one catalog file is required", 2)
	}

	cat, err := validateFile(c.Args().First())
	if err != nil {
		return err
	}

	out, err := renderCatalog(cat, c.String("player"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}
