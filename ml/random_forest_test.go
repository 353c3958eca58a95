package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func testTrees() [][]TreeNode {
	// Two stumps on feature 0: one splits at 0.5, one always votes low.
	return [][]TreeNode{
		{
			{FeatureIdx: 0, Threshold: 0.5, LeftChild: 1, RightChild: 2},
			{IsLeaf: true, Samples: 100, Recurred: 10},
			{IsLeaf: true, Samples: 100, Recurred: 90},
		},
		{
			{IsLeaf: true, Samples: 50, Recurred: 5},
		},
	}
}

func TestRandomForestPredictProba(t *testing.T) {
	model, err := NewRandomForest([]string{"f0", "f1"}, testTrees())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	low, err := model.PredictProba([]float64{0.2, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low != (0.1+0.1)/2 {
		t.Fatalf("unexpected low proba: %f", low)
	}

	high, err := model.PredictProba([]float64{0.8, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != (0.9+0.1)/2 {
		t.Fatalf("unexpected high proba: %f", high)
	}
	if high < 0 || high > 1 {
		t.Fatalf("proba outside [0,1]: %f", high)
	}
}

func TestRandomForestFeatureCountMismatch(t *testing.T) {
	model, err := NewRandomForest([]string{"f0", "f1"}, testTrees())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := model.PredictProba([]float64{0.2}); err == nil {
		t.Fatal("expected error for short feature vector")
	}
}

func TestRandomForestRejectsBadTrees(t *testing.T) {
	// Leaf with zero samples.
	if _, err := NewRandomForest([]string{"f0"}, [][]TreeNode{{{IsLeaf: true}}}); err == nil {
		t.Fatal("expected error for leaf without samples")
	}
	// Child pointing backwards.
	bad := [][]TreeNode{
		{
			{FeatureIdx: 0, Threshold: 0.5, LeftChild: 0, RightChild: 1},
			{IsLeaf: true, Samples: 10, Recurred: 1},
		},
	}
	if _, err := NewRandomForest([]string{"f0"}, bad); err == nil {
		t.Fatal("expected error for invalid child index")
	}
}

func TestLoadModelFromArtifact(t *testing.T) {
	artifact := forestArtifact{
		Model:        "random_forest",
		FeatureNames: []string{"f0", "f1"},
		Trees:        testTrees(),
	}
	payload, err := json.Marshal(artifact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	model, err := LoadModel("random_forest", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(model.FeatureNames()) != 2 {
		t.Fatalf("unexpected feature names: %v", model.FeatureNames())
	}
}

func TestLoadModelFailures(t *testing.T) {
	if _, err := LoadModel("neural_net", "ignored"); err == nil {
		t.Fatal("expected error for unsupported model type")
	}
	if _, err := LoadModel("random_forest", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing artifact")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("not json"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := LoadModel("random_forest", corrupt); err == nil {
		t.Fatal("expected error for corrupt artifact")
	}
}
