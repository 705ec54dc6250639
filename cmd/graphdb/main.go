package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/relationlabs/graphdb"
	"github.com/relationlabs/graphdb/rdf"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("graphdb: ")

	loadF := flag.String("load", "", "load N-Quads/N-Triples file into db")
	ntriples := flag.Bool("ntriples", false, "treat -load/-dump file as N-Triples instead of N-Quads")
	graphF := flag.String("graph", "", "named graph IRI for -load/-dump (default graph if empty)")
	baseURI := flag.String("base", "", "base URI")
	dump := flag.Bool("dump", false, "dump the selected graph to standard out")
	stats := flag.Bool("stats", false, "print store statistics")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: graphdb <flags> <database file>")
		flag.PrintDefaults()
	}

	flag.Parse()

	if len(flag.Args()) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	db, err := graphdb.Open(flag.Args()[0], graphdb.WithBase(*baseURI))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	format := rdf.NQuads
	if *ntriples {
		format = rdf.NTriples
	}
	graphName := graphNameFlag(*graphF)

	if *loadF != "" {
		f, err := os.Open(*loadF)
		if err != nil {
			log.Fatal(err)
		}
		n, err := db.LoadGraph(f, format, graphName, *baseURI)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("loaded %d quads from %s", n, *loadF)
	}

	if *dump {
		if err := db.DumpGraph(os.Stdout, format, graphName); err != nil {
			log.Fatal(err)
		}
	}

	if *stats {
		st, err := db.Stats()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("file:             %s\n", st.File)
		fmt.Printf("size:             %d bytes\n", st.SizeInBytes)
		fmt.Printf("dictionary size:  %d\n", st.NumDictEntries)
		fmt.Printf("named graphs:     %d\n", st.NumNamedGraphs)
		for _, bucket := range []string{"dspo", "dpos", "dosp", "gspo", "gpos", "gosp", "spog", "posg", "ospg"} {
			fmt.Printf("  %-6s distinct terms ~%d\n", bucket, st.BucketCardinality[bucket])
		}
	}
}

func graphNameFlag(iri string) rdf.GraphName {
	if iri == "" {
		return rdf.DefaultGraphName{}
	}
	return rdf.NewNamedNode(iri)
}
