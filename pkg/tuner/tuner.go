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
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/schollz/progressbar/v3"

	"github.com/chesswise/mess/pkg/eval/classical"
)

// Config holds the hyperparameters of a tuning run.
type Config struct {
	KPrecision int

	ReportRate int

	LearningRate     float64
	LearningDropRate float64
	LearningStepRate int

	MaxEpochs int
	BatchSize int
}

// Tuner runs gradient descent over a Dataset to fit the classical
// evaluator's material and piece-square terms.
type Tuner struct {
	Config Config

	Dataset Dataset
	Delta   Vector

	K float64

	Gradient Vector

	Batch int
}

// NewTuner prepares a Tuner over dataset with the given hyperparameters.
func NewTuner(dataset Dataset, config Config) *Tuner {
	return &Tuner{
		Config:  config,
		Dataset: dataset,
		Delta:   NewVector(),
	}
}

// Tune runs gradient descent with Adam-style momentum for
// tuner.Config.MaxEpochs epochs, writing an updated error-curve plot to
// error-plot.html after every epoch. It does not write the tuned
// values back into the classical package; call Tuner.Delta.Commit for
// that once tuning is satisfactory.
func (tuner *Tuner) Tune() {
	velocity := NewVector()
	momentum := NewVector()
	tuner.Gradient = NewVector()

	rate := tuner.Config.LearningRate
	batchSize := float64(tuner.Config.BatchSize)

	fmt.Println("tuner: computing optimal value of K")
	tuner.K = tuner.Dataset.ComputeK(tuner.Delta, tuner.Config.KPrecision)
	scale := (tuner.K * 2) / batchSize
	fmt.Printf("tuner: K = %v\n", tuner.K)

	var errorLabels []string
	var errorData []opts.LineData

	report := func(epoch int) {
		E := tuner.Dataset.ComputeE(tuner.Delta, tuner.K)
		fmt.Printf("tuner: E = %v\n", E)

		errorLabels = append(errorLabels, strconv.Itoa(epoch))
		errorData = append(errorData, opts.LineData{Value: E})

		plot := charts.NewLine()
		plot.SetXAxis(errorLabels).AddSeries("Error", errorData)

		if f, err := os.Create("error-plot.html"); err == nil {
			_ = plot.Render(f)
			_ = f.Close()
		}
	}

	report(0)

	batches := len(tuner.Dataset) / tuner.Config.BatchSize

	for epoch := 0; epoch < tuner.Config.MaxEpochs; epoch++ {
		fmt.Printf("tuner: started new epoch (%d/%d)\n", epoch+1, tuner.Config.MaxEpochs)

		bar := progressbar.NewOptions(
			batches,
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionSetItsString("batch"),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
		)

		for tuner.Batch = 0; tuner.Batch < batches; tuner.Batch++ {
			tuner.Gradient = NewVector()
			tuner.ComputeGradient()

			for i := 0; i < classical.TermsN; i++ {
				mgGrad := tuner.Gradient[i][MG] * scale
				egGrad := tuner.Gradient[i][EG] * scale

				momentum[i][MG] = momentum[i][MG]*0.9 + mgGrad*0.1
				momentum[i][EG] = momentum[i][EG]*0.9 + egGrad*0.1

				velocity[i][MG] = velocity[i][MG]*0.999 + mgGrad*mgGrad*0.001
				velocity[i][EG] = velocity[i][EG]*0.999 + egGrad*egGrad*0.001

				tuner.Delta[i][MG] += momentum[i][MG] * rate / math.Sqrt(1e-8+velocity[i][MG])
				tuner.Delta[i][EG] += momentum[i][EG] * rate / math.Sqrt(1e-8+velocity[i][EG])
			}

			_ = bar.Add(1)
		}

		_ = bar.Close()
		report(epoch + 1)

		if epoch != 0 {
			if epoch%tuner.Config.LearningStepRate == 0 {
				rate /= tuner.Config.LearningDropRate
			}
			if epoch%tuner.Config.ReportRate == 0 {
				fmt.Printf("tuner: delta = %#v\n", tuner.Delta)
			}
		}
	}
}
