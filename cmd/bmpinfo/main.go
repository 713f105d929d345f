// Command bmpinfo inspects and re-encodes BMP bitmap files.
//
// Usage:
//
//	bmpinfo info <input.bmp>             Display header/classification
//	bmpinfo conv [options] <in> <out>    Decode and re-encode with forced settings
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/deepteams/bmp"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "conv":
		err = runConv(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "bmpinfo: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "bmpinfo: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  bmpinfo info <input.bmp>             Display header/classification
  bmpinfo conv [options] <in> <out>    Decode and re-encode with forced settings

Use "-" as input to read from stdin.
`)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: bmpinfo info <input.bmp>")
	}

	f, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	rd, result := bmp.NewReader(f)
	fmt.Printf("classification: %s\n", result)
	if result != bmp.OK {
		return nil
	}

	w, _ := rd.Width()
	h, _ := rd.Height()
	ch, _ := rd.Channels()
	depth, _ := rd.Depth()
	fmt.Printf("width:    %d\n", w)
	fmt.Printf("height:   %d\n", h)
	fmt.Printf("channels: %d\n", ch)
	fmt.Printf("depth:    %d\n", depth)

	if profile, err := rd.ICCProfile(); err == nil && len(profile) > 0 {
		fmt.Printf("icc profile: %d bytes\n", len(profile))
	}

	_, loadResult := rd.LoadImage()
	fmt.Printf("load result: %s\n", loadResult)
	return nil
}

func runConv(args []string) error {
	fs := flag.NewFlagSet("conv", flag.ContinueOnError)
	forceIndexed := fs.Bool("indexed", false, "request raw palette indices instead of expanded RGB")
	format := fs.String("format", "int", "numeric result format: int/float/s2_13")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: bmpinfo conv [options] <in> <out>")
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	rd, result := bmp.NewReader(in)
	if result != bmp.OK {
		return fmt.Errorf("cannot decode input: %s", result)
	}

	switch *format {
	case "float":
		rd.SetFormat(bmp.FormatFloat)
	case "s2_13":
		rd.SetFormat(bmp.FormatS2_13)
	default:
		rd.SetFormat(bmp.FormatInt)
	}
	if *forceIndexed {
		rd.SetResultIndexed(true)
	}

	if _, r := rd.Width(); r != bmp.OK {
		return fmt.Errorf("width: %s", r)
	}
	if _, r := rd.Height(); r != bmp.OK {
		return fmt.Errorf("height: %s", r)
	}

	img, loadResult := rd.LoadImage()
	if img == nil {
		return fmt.Errorf("decode failed: %s", loadResult)
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer out.Close()

	wr, result := bmp.NewWriter(out)
	if result != bmp.OK {
		return fmt.Errorf("cannot open output: %s", result)
	}
	if r := wr.SetSize(img.Width, img.Height); r != bmp.OK {
		return fmt.Errorf("set size: %s", r)
	}
	if r := wr.SaveImage(img); r != bmp.OK {
		return fmt.Errorf("encode failed: %s", r)
	}
	return nil
}
