// Command mksurf converts between BMP images and raw surface files that can
// be bound as color images without conversion.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"rdpgl/surface"

	"golang.org/x/image/bmp"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input file (.bmp for encode, .surf for decode).")
		outPath = flag.String("out", "", "Output file (.surf for encode, .bmp for decode).")
		mode    = flag.String("mode", "encode", "encode|decode.")
		format  = flag.String("format", "rgba16", "rgba16|rgba32 (encode mode only).")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fatalf("usage: mksurf -mode encode -in in.bmp -out out.surf [-format rgba16|rgba32]\n       mksurf -mode decode -in in.surf -out out.bmp")
	}

	switch strings.ToLower(*mode) {
	case "encode":
		if err := encodeBMP(*inPath, *outPath, *format); err != nil {
			fatalf("encode: %v", err)
		}
	case "decode":
		if err := decodeSurface(*inPath, *outPath); err != nil {
			fatalf("decode: %v", err)
		}
	default:
		fatalf("unknown mode: %s", *mode)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func encodeBMP(inPath, outPath, formatName string) error {
	format, err := surface.ParseFormat(formatName)
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	img, err := bmp.Decode(bufio.NewReader(in))
	if err != nil {
		return fmt.Errorf("bmp: %w", err)
	}
	s, err := surface.FromImage(img, format)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, 64*1024)
	if err := surface.Encode(bw, s); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return out.Close()
}

func decodeSurface(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	s, err := surface.Decode(bufio.NewReader(in))
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, 64*1024)
	if err := bmp.Encode(bw, s.Image()); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return out.Close()
}
