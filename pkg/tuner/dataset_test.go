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

package tuner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chesswise/mess/pkg/board"
)

func writeDataset(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.txt")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDatasetParsesResultsAndFENs(t *testing.T) {
	path := writeDataset(t,
		"[1.0] "+board.StartFEN,
		"[0.5] "+board.StartFEN,
		"[0.0] "+board.StartFEN,
	)

	dataset, err := NewDataset(path)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	if len(dataset) != 3 {
		t.Fatalf("len(dataset) = %d, want 3", len(dataset))
	}
	if dataset[0].result != 1.0 || dataset[1].result != 0.5 || dataset[2].result != 0.0 {
		t.Errorf("unexpected results: %+v", dataset)
	}
}

func TestNewDatasetRejectsMalformedLines(t *testing.T) {
	path := writeDataset(t, "not-a-valid-line")
	if _, err := NewDataset(path); err == nil {
		t.Error("expected an error for a malformed dataset line")
	}
}

func TestSigmoidIsBoundedAndMonotonic(t *testing.T) {
	low := Sigmoid(1, -1000)
	mid := Sigmoid(1, 0)
	high := Sigmoid(1, 1000)

	if !(low < mid && mid < high) {
		t.Errorf("sigmoid should be monotonically increasing, got %v < %v < %v", low, mid, high)
	}
	if mid != 0.5 {
		t.Errorf("sigmoid(K, 0) = %v, want 0.5", mid)
	}
}

func TestComputeEIsZeroForAPerfectPredictor(t *testing.T) {
	path := writeDataset(t, "[0.5] "+board.StartFEN)
	dataset, err := NewDataset(path)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	// the starting position's static evaluation is exactly 0, so at any
	// K the sigmoid predicts a draw, matching the recorded 0.5 result.
	delta := NewVector()
	if e := dataset.ComputeE(delta, 1); e > 1e-9 {
		t.Errorf("ComputeE = %v, want ~0", e)
	}
}
