package recall

import "math"

// Vectorizer 是向量空间索引器：基于当前目录快照做 TF-IDF 词权重向量化。
//
// 权重公式：weight(t, d) = tf(t, d) × ln(N / df(t))
//   - tf：token 在文档中的出现次数
//   - df：包含该 token 的文档数
//   - N：语料文档总数
//
// 语料每次请求重建，没有持久化索引；同一目录快照下输出完全确定。
type Vectorizer struct {
	vocab map[string]int // token -> 向量维度下标
	terms []string       // 下标 -> token（按首次出现顺序）
	df    []int          // 每个 token 的文档频次
	n     int            // 文档总数
}

// FitVectorizer 用整个语料（每个文档是一条 token 序列）训练向量化器。
// 空语料也返回可用的 Vectorizer：Transform 恒为空向量，下游按"无可推荐"处理。
func FitVectorizer(docs [][]string) *Vectorizer {
	v := &Vectorizer{
		vocab: make(map[string]int),
		n:     len(docs),
	}

	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := v.vocab[tok]; !ok {
				v.vocab[tok] = len(v.terms)
				v.terms = append(v.terms, tok)
				v.df = append(v.df, 0)
			}
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				v.df[v.vocab[tok]]++
			}
		}
	}

	return v
}

// VocabSize 返回语料词表大小（即向量维度）。
func (v *Vectorizer) VocabSize() int {
	return len(v.terms)
}

// Transform 把任意 token 序列转成词表维度的 TF-IDF 权重向量。
// 语料外的 token 直接忽略（对相似度没有贡献）。
func (v *Vectorizer) Transform(tokens []string) []float64 {
	vec := make([]float64, len(v.terms))
	if v.n == 0 || len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		if idx, ok := v.vocab[tok]; ok {
			vec[idx]++
		}
	}

	for idx, tf := range vec {
		if tf > 0 {
			vec[idx] = tf * math.Log(float64(v.n)/float64(v.df[idx]))
		}
	}

	return vec
}

// Cosine 计算两个同维度向量的余弦相似度：dot(A,B) / (‖A‖·‖B‖)。
// 任一向量为零向量时返回 0（避免 NaN；零向量候选视为不相似）。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
