// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/willf/bloom"
	"gopkg.in/yaml.v3"

	"github.com/cybrota/roster/avl"
)

// RecordEntry is one record of a bulk load file.
type RecordEntry struct {
	ID   int64  `yaml:"id"`
	Age  int    `yaml:"age"`
	Name string `yaml:"name"`
}

// RecordFile is the YAML document accepted by the load command:
//
//	records:
//	  - id: 1
//	    age: 36
//	    name: Ada Lovelace
type RecordFile struct {
	Records []RecordEntry `yaml:"records"`
}

// LoadSummary counts the outcome of a bulk load. Every entry lands in
// exactly one bucket. An id repeated within the file counts as
// DuplicateInFile from its second occurrence on, even when its first
// occurrence was itself rejected because the id was already in the tree
// (DuplicateInTree). Neither kind of duplicate changes the tree.
type LoadSummary struct {
	Inserted        int
	DuplicateInFile int
	DuplicateInTree int
}

func readRecordFile(r io.Reader) ([]RecordEntry, error) {
	var file RecordFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse record file: %w", err)
	}
	return file.Records, nil
}

func idBytes(id int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b[:]
}

// recordLoader inserts records in file order. Ids repeated inside the file
// are caught by a bloom filter over the ids seen so far, confirmed against
// the tree, and skipped; only the first occurrence is inserted.
type recordLoader struct {
	tree     *avl.Tree
	seen     *bloom.BloomFilter
	notices  io.Writer
	bar      *progressbar.ProgressBar
	progress bool
}

func newRecordLoader(tree *avl.Tree, config LoaderConfig, notices io.Writer) *recordLoader {
	size, hashes := config.BloomFilterSize, config.BloomFilterHashes
	if size == 0 {
		size = defaultConfig.Load.BloomFilterSize
	}
	if hashes == 0 {
		hashes = defaultConfig.Load.BloomFilterHashes
	}
	return &recordLoader{
		tree:     tree,
		seen:     bloom.New(size, hashes),
		notices:  notices,
		progress: config.ShowProgress,
	}
}

func (l *recordLoader) Load(entries []RecordEntry, progressOut io.Writer) (LoadSummary, error) {
	var summary LoadSummary

	if l.progress {
		l.bar = progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(progressOut),
			progressbar.OptionSetDescription("📦 Loading records..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(progressOut)
			}),
		)
	}

	for _, e := range entries {
		if l.bar != nil {
			_ = l.bar.Add(1)
		}

		key := idBytes(e.ID)
		if l.seen.TestAndAdd(key) && l.tree.Find(e.ID) != nil {
			summary.DuplicateInFile++
			fmt.Fprintf(l.notices, "ID number %d appears more than once in the file.\n", e.ID)
			continue
		}

		err := l.tree.Insert(e.ID, e.Age, e.Name)
		switch {
		case err == nil:
			summary.Inserted++
		case errors.Is(err, avl.ErrDuplicateKey):
			summary.DuplicateInTree++
			fmt.Fprintf(l.notices, "ID number %d is already in use.\n", e.ID)
		default:
			return summary, err
		}
	}

	if l.bar != nil {
		_ = l.bar.Finish()
	}
	return summary, nil
}
