package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 400

type PortfolioRepo interface {
	SearchPortfolios(ctx context.Context, queryText string, from, size int) ([]*PortfolioES, error)
	GetPortfolioById(ctx context.Context, id uint64) (*PortfolioES, error)
	IndexPortfolio(ctx context.Context, portfolio *PortfolioES) error
	DeletePortfolio(ctx context.Context, id uint64) error
	UpdateViewCount(ctx context.Context, id uint64, viewCount int64) error
}

type PortfolioRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPortfolioRepo(client *elasticsearch.TypedClient) PortfolioRepo {
	return &PortfolioRepoImpl{client: client}
}

// SearchPortfolios 公开作品集全文检索，空查询退化为按更新时间的最新列表
func (s *PortfolioRepoImpl) SearchPortfolios(ctx context.Context, queryText string, from, size int) ([]*PortfolioES, error) {
	if from >= MaxSearchDepth {
		return []*PortfolioES{}, nil
	}

	req := s.client.Search().Index(PortfolioIndex).From(from).Size(size)

	if queryText == "" {
		req = req.Query(&types.Query{MatchAll: &types.MatchAllQuery{}}).
			Sort(types.SortOptions{SortOptions: map[string]types.FieldSort{
				"updated_at": {Order: &sortorder.Desc},
			}})
	} else {
		req = req.Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  queryText,
				Fields: []string{"profile_name^3", "title^2", "name^2", "bio", "skills", "location"},
			},
		})
	}

	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	portfolios := make([]*PortfolioES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var portfolio PortfolioES
		if err = json.Unmarshal(hit.Source_, &portfolio); err != nil {
			return nil, err
		}
		portfolios = append(portfolios, &portfolio)
	}
	return portfolios, nil
}

func (s *PortfolioRepoImpl) GetPortfolioById(ctx context.Context, id uint64) (*PortfolioES, error) {
	resp, err := s.client.Get(PortfolioIndex, strconv.FormatUint(id, 10)).Do(ctx)
	if err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, errors.New("文档不存在")
	}

	var portfolio PortfolioES
	if err = json.Unmarshal(resp.Source_, &portfolio); err != nil {
		return nil, err
	}
	return &portfolio, nil
}

// IndexPortfolio 发布时写入或覆盖文档
func (s *PortfolioRepoImpl) IndexPortfolio(ctx context.Context, portfolio *PortfolioES) error {
	_, err := s.client.Index(PortfolioIndex).
		Id(strconv.FormatUint(portfolio.ID, 10)).
		Document(portfolio).
		Do(ctx)
	return err
}

// DeletePortfolio 下线或删除时移除文档，文档不存在视为成功
func (s *PortfolioRepoImpl) DeletePortfolio(ctx context.Context, id uint64) error {
	_, err := s.client.Delete(PortfolioIndex, strconv.FormatUint(id, 10)).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}
	return nil
}

// UpdateViewCount 回写浏览量，未入索引的文档（草稿）直接跳过
func (s *PortfolioRepoImpl) UpdateViewCount(ctx context.Context, id uint64, viewCount int64) error {
	countJSON, _ := json.Marshal(viewCount)
	params := map[string]json.RawMessage{
		"view_count": json.RawMessage(countJSON),
	}
	scriptSource := "ctx._source.view_count = params.view_count;"

	_, err := s.client.Update(PortfolioIndex, strconv.FormatUint(id, 10)).
		Script(&types.Script{
			Source: &scriptSource,
			Params: params,
		}).
		Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}
	return nil
}
