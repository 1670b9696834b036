package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/shopstack/shoprec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量和函数
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("item", cel.DynType),
		cel.Variable("product", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是候选过滤规则的解释器，使用 CEL (Common Expression Language) 实现。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score > 0.7 / product.price <= 500.0
//   - 逻辑：product.price < 100.0 && item.score > 0.2
//   - 标签：label.recall_source == "content"
//   - 请求参数：rctx.params.channel == "app"
//
// 示例：
//   - `product.price <= 500.0` → 只保留价格不超过 500 的候选
//   - `!("clearance" in product.categories)` → 剔除清仓类目
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的规则解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行规则表达式，返回布尔结果。
// 空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	// 编译表达式
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	// 创建程序
	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	// 执行表达式
	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// 对于不存在的 key，CEL 会返回错误
		// 规则应该使用 label.key != null 检查存在性，而不是直接访问
		return false, fmt.Errorf("eval error: %v", err)
	}

	// 转换为布尔值
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	// label map：label.recall_source 直接取 value
	labelAccessor := make(map[string]any)
	for k, v := range e.item.Labels {
		labelAccessor[k] = v.Value
	}

	item := map[string]any{
		"id":    e.item.ID,
		"score": e.item.Score,
	}

	// product map：结果装配前 Product 可能为 nil，规则里用 product.id != "" 判断
	product := map[string]any{
		"id":         "",
		"title":      "",
		"categories": []string{},
		"price":      0.0,
	}
	if p := e.item.Product; p != nil {
		product["id"] = p.ID
		product["title"] = p.Title
		product["categories"] = p.Categories
		product["price"] = p.Price
	}

	rctx := map[string]any{
		"user_id":    e.rctx.UserID,
		"product_id": e.rctx.ProductID,
		"scene":      e.rctx.Scene,
		"params":     e.rctx.Params,
	}

	return map[string]any{
		"item":    item,
		"product": product,
		"label":   labelAccessor,
		"rctx":    rctx,
	}
}
