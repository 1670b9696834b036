package recall

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/shopstack/shoprec/core"
	"github.com/shopstack/shoprec/pkg/utils"
)

// InteractionRow 是一个用户的交互行：商品 ID -> 累积交互分。
// scores 提供 O(1) 查找，products 记录首次出现顺序——Go map 的迭代顺序
// 是随机的，而同分 tie-break 要求跨请求稳定，所以顺序必须显式维护。
type InteractionRow struct {
	scores   map[string]float64
	products []string
}

// Score 返回该用户对某商品的交互分。
func (r *InteractionRow) Score(productID string) (float64, bool) {
	s, ok := r.scores[productID]
	return s, ok
}

// Has 判断该用户是否与某商品有过交互。
func (r *InteractionRow) Has(productID string) bool {
	_, ok := r.scores[productID]
	return ok
}

// Len 返回交互过的商品数。
func (r *InteractionRow) Len() int {
	return len(r.scores)
}

// Products 按首次交互顺序返回商品 ID 列表。
func (r *InteractionRow) Products() []string {
	return r.products
}

func (r *InteractionRow) add(productID string, delta float64) {
	if _, ok := r.scores[productID]; !ok {
		r.products = append(r.products, productID)
	}
	r.scores[productID] += delta
}

func (r *InteractionRow) setPresence(productID string) {
	if _, ok := r.scores[productID]; !ok {
		r.products = append(r.products, productID)
		r.scores[productID] = 1
	}
	// 订单是二值存在信号：重复购买/多件数量不叠加
}

// InteractionMatrix 是用户 -> 交互行的稀疏矩阵，每次请求从协作方数据重建。
// 不在矩阵中的用户没有任何可观测交互；在矩阵中的用户至少有一条交互。
type InteractionMatrix struct {
	rows  map[string]*InteractionRow
	users []string // 首次出现顺序，保证邻居遍历的确定性
}

// NewInteractionMatrix 创建空矩阵。
func NewInteractionMatrix() *InteractionMatrix {
	return &InteractionMatrix{rows: make(map[string]*InteractionRow)}
}

// Row 返回某用户的交互行。
func (m *InteractionMatrix) Row(userID string) (*InteractionRow, bool) {
	row, ok := m.rows[userID]
	return row, ok
}

// Users 按首次出现顺序返回所有用户 ID。
func (m *InteractionMatrix) Users() []string {
	return m.users
}

// Len 返回有交互记录的用户数。
func (m *InteractionMatrix) Len() int {
	return len(m.rows)
}

func (m *InteractionMatrix) row(userID string) *InteractionRow {
	row, ok := m.rows[userID]
	if !ok {
		row = &InteractionRow{scores: make(map[string]float64)}
		m.rows[userID] = row
		m.users = append(m.users, userID)
	}
	return row
}

// BuildInteractionMatrix 把两路独立信号合并成 (用户, 商品) 交互分：
//   - 订单：出现即记 1 分（存在信号，数量不放大权重）
//   - 偏好：每次点赞 +1，已有分数时叠加而不是覆盖
//
// 游客单（UserID 为空）不进矩阵：协同过滤只对可识别用户有意义。
func BuildInteractionMatrix(
	transactions []core.Transaction,
	preferences []core.PreferenceSignal,
) *InteractionMatrix {
	m := NewInteractionMatrix()

	for _, tx := range transactions {
		if tx.UserID == "" {
			continue
		}
		for _, line := range tx.Lines {
			if line.ProductID == "" {
				continue
			}
			m.row(tx.UserID).setPresence(line.ProductID)
		}
	}

	for _, pref := range preferences {
		if pref.UserID == "" {
			continue
		}
		for _, productID := range pref.ProductIDs {
			if productID == "" {
				continue
			}
			m.row(pref.UserID).add(productID, 1)
		}
	}

	return m
}

// OverlapSimilarity 计算两个交互行的集合重叠相似度：
// |交集| / sqrt(|A| × |B|)。只看交互过的商品集合，刻意忽略分值大小。
func OverlapSimilarity(a, b *InteractionRow) float64 {
	if a == nil || b == nil || a.Len() == 0 || b.Len() == 0 {
		return 0
	}

	intersection := 0
	for _, productID := range a.Products() {
		if b.Has(productID) {
			intersection++
		}
	}
	if intersection == 0 {
		return 0
	}

	return float64(intersection) / math.Sqrt(float64(a.Len())*float64(b.Len()))
}

// UserBasedCF 是基于用户的协同过滤召回源（User-based Collaborative Filtering）。
//
// 核心思想："兴趣相似的用户，喜欢相似的商品"
//
// 算法流程：
//  1. 并发拉取历史订单与偏好信号，构建交互矩阵
//  2. 用集合重叠度量计算目标用户与其他用户的相似度
//  3. 取 TopK 相似邻居（默认 K=10，人少取全量；同分按矩阵行序稳定）
//  4. 对目标用户未交互过的商品累积 邻居相似度 × 邻居交互分
//  5. 丢弃累积分 <= 0 的候选
//
// 目标用户不在矩阵中（无任何历史）时返回空结果，不算错误。
type UserBasedCF struct {
	Orders    core.OrderStore
	Favorites core.FavoriteStore

	// TopKSimilarUsers 参与聚合的相似邻居数，<= 0 时默认 10
	TopKSimilarUsers int
}

func (r *UserBasedCF) Name() string {
	return "recall.u2i" // 工业标准命名：u2i (User-to-Item)
}

func (r *UserBasedCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Orders == nil || r.Favorites == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	// 订单与偏好各一次批量读取，并发执行；任一失败整个请求失败（不出半截结果）
	var (
		transactions []core.Transaction
		preferences  []core.PreferenceSignal
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		transactions, err = r.Orders.FindAll(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		preferences, err = r.Favorites.FindAll(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	matrix := BuildInteractionMatrix(transactions, preferences)
	return r.recommend(matrix, rctx.UserID), nil
}

// RecallFromMatrix 在已构建的矩阵上执行邻居选择与加权聚合。
// 拆出来是为了让矩阵构建与聚合可以分别测试。
func (r *UserBasedCF) RecallFromMatrix(
	matrix *InteractionMatrix,
	userID string,
) []*core.Item {
	return r.recommend(matrix, userID)
}

func (r *UserBasedCF) recommend(matrix *InteractionMatrix, userID string) []*core.Item {
	targetRow, ok := matrix.Row(userID)
	if !ok || targetRow.Len() == 0 {
		return nil // 无历史 -> 空结果
	}

	type neighbor struct {
		row        *InteractionRow
		similarity float64
	}
	neighbors := make([]neighbor, 0, matrix.Len()-1)

	for _, otherID := range matrix.Users() {
		if otherID == userID {
			continue
		}
		otherRow, _ := matrix.Row(otherID)
		sim := OverlapSimilarity(targetRow, otherRow)
		if sim > 0 { // 零重叠用户不可能贡献候选
			neighbors = append(neighbors, neighbor{row: otherRow, similarity: sim})
		}
	}

	// 稳定排序 + 截断：同相似度邻居保持矩阵行序
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].similarity > neighbors[j].similarity
	})
	topK := r.TopKSimilarUsers
	if topK <= 0 {
		topK = 10
	}
	if len(neighbors) > topK {
		neighbors = neighbors[:topK]
	}

	// 加权累积：running[product] += 邻居相似度 × 邻居交互分
	accumulated := make(map[string]float64)
	order := make([]string, 0)
	for _, nb := range neighbors {
		for _, productID := range nb.row.Products() {
			if targetRow.Has(productID) {
				continue // 只推目标用户没接触过的商品
			}
			if _, ok := accumulated[productID]; !ok {
				order = append(order, productID)
			}
			accumulated[productID] += nb.similarity * nb.row.scores[productID]
		}
	}

	out := make([]*core.Item, 0, len(order))
	for _, productID := range order {
		score := accumulated[productID]
		if score <= 0 {
			continue // 0 分不构成推荐
		}
		it := core.NewItem(productID)
		it.Score = score
		it.PutLabel("recall_source", utils.Label{Value: "u2i", Source: "recall"})
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}
