// Package io reads and writes the city dataset JSON format.
//
// # JSON Format
//
// A dataset has two required top-level objects:
//
//	{
//	  "cities": {
//	    "Paris":  {"country": "France"},
//	    "Lyon":   {"country": "France"},
//	    "Zurich": {"country": "Switzerland"}
//	  },
//	  "adjacency_list": {
//	    "Paris":  {"Lyon": 465},
//	    "Lyon":   {"Paris": 465, "Zurich": 408},
//	    "Zurich": {"Lyon": 408}
//	  }
//	}
//
// Every road appears once per direction. Loading keeps the first direction
// in document order; key order is preserved while decoding for that reason.
//
// # Import
//
// Use [ImportJSON] for files, [ReadJSON] for readers, and [LoadGraph] to go
// straight to a [citygraph.Graph]:
//
//	g, err := io.LoadGraph("../dataset/graph.json")
//
// # Export
//
// [WriteJSON] and [ExportJSON] produce the same format, listing each road
// under both endpoints:
//
//	err := io.ExportJSON(g, "copy.json")
//
// # Errors
//
// Errors carry codes from pkg/errors: FILE_NOT_FOUND for a missing file,
// INVALID_INPUT for malformed JSON or missing keys, UNKNOWN_CITY when the
// adjacency list names a city absent from "cities".
package io
