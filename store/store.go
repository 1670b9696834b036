package store

// 注意：此包只包含实现，接口定义在 core 包。
// 协作方存储使用 core.CatalogStore / core.OrderStore / core.FavoriteStore，
// 旁路缓存使用 core.KeyValueStore。
//
// 示例：
//   var catalog core.CatalogStore = store.NewMemoryCatalogStore(products)
//   var cache core.KeyValueStore = store.NewMemoryStore()
