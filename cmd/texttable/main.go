// Package main implements the business logic for the texttable CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	file         = flag.String("file", "", "file to read (render) or update in place (convert_tables)")
	ignoreErrors = flag.Bool("ignore_errors", false, "set to leave a table as-is if there is an error")
	verbose      = flag.Bool("verbose", false, "enable debug logging")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	args := flag.Args()
	if len(args) < 1 {
		return errors.New("please provide an action")
	}
	if *file == "" {
		return errors.New("please provide -file")
	}

	action := strings.ToLower(args[0])
	switch action {
	case "render":
		contents, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		lines, err := renderCSV(contents)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	case "convert_tables":
		return rewriteInPlace(convertTables)
	default:
		return fmt.Errorf("unknown action: %q", action)
	}
}

// rewriteInPlace reads the -file, applies transform, and writes the result
// back over the original contents.
func rewriteInPlace(transform func([]byte) ([]byte, error)) error {
	f, err := os.OpenFile(*file, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	newContents, err := transform(contents)
	if err != nil {
		return err
	}

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	if _, err := f.Write(newContents); err != nil {
		return err
	}
	return nil
}
