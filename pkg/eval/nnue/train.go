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

import "math"

// Hyperparameters configures a Trainer's Adam-style gradient descent.
// The defaults mirror the momentum/RMSProp betas recommended for Adam
// generally and used by this engine's reference trainer.
type Hyperparameters struct {
	LearningRate float32
	Beta1        float32 // momentum
	Beta2        float32 // RMSProp
}

// DefaultHyperparameters returns the trainer configuration this engine
// ships with: a modest learning rate and the textbook Adam betas.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		LearningRate: 0.05,
		Beta1:        0.9,
		Beta2:        0.999,
	}
}

// Trainer fits a Network's weights to a set of labelled positions using
// mean-squared-error loss and Adam-style gradient descent.
type Trainer struct {
	Params Hyperparameters
	net    *Network
}

// NewTrainer wraps net for training with the given hyperparameters.
func NewTrainer(net *Network, params Hyperparameters) *Trainer {
	return &Trainer{Params: params, net: net}
}

// Sample is a single labelled training example: the input feature
// vector of a position, and its target evaluation in [-1, 1] (a
// game outcome or a scaled search score).
type Sample struct {
	Input  []float32
	Target float32
}

// Step runs one forward pass, backpropagation, and an Adam parameter
// update over a mini-batch of samples, returning the mean squared error
// of the batch before the update.
func (t *Trainer) Step(batch []Sample) float32 {
	t.net.iterations++

	var mse float32
	for _, l := range t.net.Layers {
		for i := range l.gradW {
			l.gradW[i] = 0
		}
		l.gradB = 0
	}

	for _, sample := range batch {
		prediction := t.forwardCached(sample.Input)
		err := prediction - sample.Target
		mse += err * err

		t.backward(sample.Input, err)
	}

	n := float32(len(batch))
	for _, l := range t.net.Layers {
		for i := range l.gradW {
			l.gradW[i] /= n
		}
		l.gradB /= n
	}

	t.update()

	return mse / n
}

// forwardCached runs Forward while keeping each layer's preactivated/
// activated caches populated for the following backward pass.
func (t *Trainer) forwardCached(input []float32) float32 {
	prev := input
	for _, l := range t.net.Layers {
		prev = l.forward(prev)
	}
	return prev[0]
}

// activationsOf returns the output activations of the layer before i,
// or the network's raw input features for i == 0.
func (t *Trainer) activationsOf(input []float32, i int) []float32 {
	if i == 0 {
		return input
	}
	return t.net.Layers[i-1].activated
}

// backward propagates the derivative of squared-error loss with
// respect to the single scalar output back through every layer,
// accumulating weight/bias gradients as it goes.
func (t *Trainer) backward(input []float32, outputErr float32) {
	layers := t.net.Layers
	dA := []float32{2 * outputErr}

	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		prevActivations := t.activationsOf(input, i)

		dZ := make([]float32, l.Nodes)
		for n := 0; n < l.Nodes; n++ {
			dZ[n] = dA[n] * l.Activation.derivative(l.preactivated[n])
		}

		for n := 0; n < l.Nodes; n++ {
			row := l.gradW[n*l.PrevNodes : (n+1)*l.PrevNodes]
			for p, a := range prevActivations {
				row[p] += dZ[n] * a
			}
			l.gradB += dZ[n]
		}

		if i == 0 {
			break
		}

		next := make([]float32, l.PrevNodes)
		for n := 0; n < l.Nodes; n++ {
			row := l.Weights[n*l.PrevNodes : (n+1)*l.PrevNodes]
			for p := range row {
				next[p] += row[p] * dZ[n]
			}
		}
		dA = next
	}
}

// update applies one Adam step to every layer's weights and bias using
// the gradients accumulated by backward.
func (t *Trainer) update() {
	const epsilon = 1e-8

	beta1, beta2 := t.Params.Beta1, t.Params.Beta2
	lr := t.Params.LearningRate

	bias1Correction := 1 - pow(beta1, t.net.iterations)
	bias2Correction := 1 - pow(beta2, t.net.iterations)

	for _, l := range t.net.Layers {
		for i, g := range l.gradW {
			l.momentumW[i] = beta1*l.momentumW[i] + (1-beta1)*g
			l.momentumSqW[i] = beta2*l.momentumSqW[i] + (1-beta2)*g*g

			mHat := l.momentumW[i] / bias1Correction
			vHat := l.momentumSqW[i] / bias2Correction

			l.Weights[i] -= lr * mHat / (sqrt(vHat) + epsilon)
		}

		l.momentumB = beta1*l.momentumB + (1-beta1)*l.gradB
		l.momentumSqB = beta2*l.momentumSqB + (1-beta2)*l.gradB*l.gradB

		mHat := l.momentumB / bias1Correction
		vHat := l.momentumSqB / bias2Correction
		l.Bias -= lr * mHat / (sqrt(vHat) + epsilon)
	}
}

func pow(base float32, exp int) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

func sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
