package application

// GoodsService 商品服务门面，整合命令和查询服务
type GoodsService struct {
	Command *GoodsCommandService
	Query   *GoodsQueryService
}

// NewGoodsService 构造函数
func NewGoodsService(command *GoodsCommandService, query *GoodsQueryService) *GoodsService {
	return &GoodsService{Command: command, Query: query}
}
