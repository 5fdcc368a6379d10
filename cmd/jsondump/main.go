// jsondump decodes a JSON document and dumps the resulting value tree,
// either as a Go literal or re-encoded as canonical JSON. With -chunk it
// feeds the input through the streaming path in fixed-size fragments, which
// is mainly useful for exercising chunked decoding against real documents.
package main

import (
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"os"

	"github.com/alecthomas/repr"

	"github.com/lukeod/jsondec"
	"github.com/lukeod/jsondec/encoder"
)

func main() {
	log.SetFlags(0)

	inPath := flag.String("in", "", "Path to the JSON file to decode (default: stdin)")
	chunk := flag.Int("chunk", 0, "Feed the input in fragments of this many bytes (0 = single buffer)")
	format := flag.String("format", "repr", "Output format: repr or json")
	internKeys := flag.Bool("intern", false, "Intern object keys in the process-wide pool")
	flag.Parse()

	if *format != "repr" && *format != "json" {
		log.Fatalf("Error: invalid -format %q. Must be 'repr' or 'json'", *format)
	}

	data, err := readInput(*inPath)
	if err != nil {
		log.Fatalf("Error reading input: %v", err)
	}

	var opts []jsondec.Option
	if *internKeys {
		opts = append(opts, jsondec.WithInternedKeys())
	}

	var val any
	if *chunk > 0 {
		val, err = jsondec.DecodeSeq(fragments(data, *chunk), opts...)
	} else {
		val, err = jsondec.Decode(data, opts...)
	}
	if err != nil {
		log.Fatalf("Error decoding %s: %v", inputName(*inPath), err)
	}

	switch *format {
	case "repr":
		fmt.Println(repr.String(val, repr.Indent("  ")))
	case "json":
		out, err := encoder.Encode(val)
		if err != nil {
			log.Fatalf("Error re-encoding value: %v", err)
		}
		fmt.Println(string(out))
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func inputName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}

// fragments yields data in runs of at most n bytes.
func fragments(data []byte, n int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for len(data) > 0 {
			k := min(n, len(data))
			if !yield(data[:k]) {
				return
			}
			data = data[k:]
		}
	}
}
