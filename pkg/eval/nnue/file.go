// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nnue

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// magic is the 4-byte header every weight file starts with; readers
// reject any file that doesn't begin with it.
var magic = [4]byte{'n', 'n', 'u', 'e'}

// Save writes net to path in the engine's weight-file format: the
// magic header, then for each layer its node count, activation tag,
// row-major little-endian float32 weights, and scalar bias.
func Save(net *Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}

	for _, l := range net.Layers {
		if err := binary.Write(w, binary.LittleEndian, uint64(l.Nodes)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint8(l.Activation)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, l.Weights); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, l.Bias); err != nil {
			return err
		}
	}

	return w.Flush()
}

// Load reads a Network previously written by Save from path.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	if header != magic {
		return nil, fmt.Errorf("nnue: invalid weight file, bad magic bytes %q", header)
	}

	net := &Network{}
	prevNodes := InputSize

	for {
		var nodes uint64
		err := binary.Read(r, binary.LittleEndian, &nodes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var activationTag uint8
		if err := binary.Read(r, binary.LittleEndian, &activationTag); err != nil {
			return nil, err
		}

		l := newLayer(int(nodes), prevNodes, Activation(activationTag))
		if err := binary.Read(r, binary.LittleEndian, l.Weights); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &l.Bias); err != nil {
			return nil, err
		}

		net.Layers = append(net.Layers, l)
		prevNodes = int(nodes)
	}

	if len(net.Layers) == 0 {
		return nil, fmt.Errorf("nnue: weight file %s has no layers", path)
	}

	return net, nil
}
