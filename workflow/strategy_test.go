package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected Strategy
	}{
		{"comparative chinese", "比较深度学习和机器学习的区别", StrategyComparative},
		{"comparative english", "What is the difference between TCP and UDP?", StrategyComparative},
		{"summarization chinese", "总结一下这篇文章的要点", StrategySummarization},
		{"summarization english", "Give me an overview of the architecture", StrategySummarization},
		{"how-to chinese", "如何训练一个神经网络", StrategyHowTo},
		{"how-to english", "How to configure the connection pool?", StrategyHowTo},
		{"causal chinese", "为什么模型会过拟合", StrategyCausal},
		{"causal english", "Why does the cache miss rate spike?", StrategyCausal},
		{"general chinese", "什么是机器学习？", StrategyGeneral},
		{"general english", "Tell me about vector databases", StrategyGeneral},
		{"empty query", "", StrategyGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyQuery(tt.query))
		})
	}
}

func TestClassifyQueryDeterministic(t *testing.T) {
	query := "比较 Redis 和 Memcached"
	first := ClassifyQuery(query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ClassifyQuery(query))
	}
}

func TestClassifyQueryFirstMatchWins(t *testing.T) {
	// Contains both comparative and causal markers; comparative is checked first.
	assert.Equal(t, StrategyComparative, ClassifyQuery("比较并解释为什么两者不同"))
}

func TestBaseTopK(t *testing.T) {
	tests := []struct {
		strategy Strategy
		topK     int
	}{
		{StrategyComparative, 8},
		{StrategySummarization, 10},
		{StrategyHowTo, 5},
		{StrategyCausal, 5},
		{StrategyGeneral, 5},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			assert.Equal(t, tt.topK, tt.strategy.BaseTopK())
		})
	}
}
