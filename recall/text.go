package recall

import "strings"

// Normalize 把原始文本切成小写 token 序列：
// 非字母数字字符（下划线除外）替换为空格，连续空白折叠。
// 不做词干化、不去停用词；纯函数，输出只取决于输入。
func Normalize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(' ')
		}
	}

	// Fields 顺带完成空白折叠；全标点输入得到空序列
	return strings.Fields(b.String())
}

// ProductDocument 把商品的文本字段拼成一条语料：标题 + 空格连接的类目 token。
func ProductDocument(title string, categories []string) []string {
	if len(categories) == 0 {
		return Normalize(title)
	}
	return Normalize(title + " " + strings.Join(categories, " "))
}
