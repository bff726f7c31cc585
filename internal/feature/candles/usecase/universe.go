package usecase

import (
	instrumententity "quant_backend/internal/feature/instruments/domain/entity"
)

// UniverseEntry is one instrument of a built-in batch universe.
type UniverseEntry struct {
	Symbol      string
	Name        string
	Category    string
	Market      instrumententity.Market
	TradingRule string
}

func cnETF(symbol, name, category string) UniverseEntry {
	return UniverseEntry{Symbol: symbol, Name: name, Category: category, Market: instrumententity.MarketCN, TradingRule: instrumententity.TradingRuleT1}
}

// cross-border and gold ETFs settle T+0
func cnETFT0(symbol, name, category string) UniverseEntry {
	e := cnETF(symbol, name, category)
	e.TradingRule = instrumententity.TradingRuleT0
	return e
}

func usStock(symbol, name, category string) UniverseEntry {
	return UniverseEntry{Symbol: symbol, Name: name, Category: category, Market: instrumententity.MarketUS, TradingRule: instrumententity.TradingRuleT0}
}

// CNETFs is the universe of commonly traded A-share ETFs.
var CNETFs = []UniverseEntry{
	cnETF("510300", "沪深300ETF", "broad index"),
	cnETF("510500", "中证500ETF", "broad index"),
	cnETF("159919", "沪深300ETF（深市）", "broad index"),
	cnETF("159915", "创业板ETF", "broad index"),
	cnETF("512100", "1000ETF", "broad index"),
	cnETF("159901", "深证100ETF", "broad index"),
	cnETF("510050", "50ETF", "broad index"),
	cnETF("512000", "券商ETF", "financials"),
	cnETF("512800", "银行ETF", "financials"),
	cnETF("515050", "5G ETF", "technology"),
	cnETF("512760", "芯片ETF", "technology"),
	cnETF("159997", "芯片ETF（广发）", "technology"),
	cnETF("515880", "通信ETF", "technology"),
	cnETF("515030", "新基建ETF", "technology"),
	cnETF("159939", "信息技术ETF", "technology"),
	cnETF("512480", "半导体ETF", "technology"),
	cnETF("159928", "消费ETF", "consumer"),
	cnETF("512600", "消费ETF（南方）", "consumer"),
	cnETF("159936", "可选消费ETF", "consumer"),
	cnETF("159996", "家电ETF", "consumer"),
	cnETF("512690", "酒ETF", "consumer"),
	cnETF("516160", "新能源ETF", "new energy"),
	cnETF("159824", "新能源ETF（博时）", "new energy"),
	cnETF("516850", "新能源车ETF", "new energy"),
	cnETF("159806", "新能源80ETF", "new energy"),
	cnETF("159929", "医药ETF", "healthcare"),
	cnETF("512170", "医疗ETF", "healthcare"),
	cnETF("159938", "医药卫生ETF", "healthcare"),
	cnETF("159992", "创新药ETF", "healthcare"),
	cnETF("512010", "医药ETF（易方达）", "healthcare"),
	cnETF("159940", "金融ETF", "financials"),
	cnETF("512660", "军工ETF", "defense"),
	cnETF("512980", "传媒ETF", "media"),
	cnETF("159805", "文化传媒ETF", "media"),
	cnETF("159825", "农业ETF", "agriculture"),
	cnETF("512200", "地产ETF", "real estate"),
	cnETF("512400", "有色ETF", "nonferrous metals"),
	cnETF("515220", "煤炭ETF", "coal"),
	cnETF("159945", "能源ETF", "energy"),
	cnETF("515210", "钢铁ETF", "steel"),
	cnETF("512340", "原材料ETF", "materials"),
	cnETFT0("513310", "中韩半导体ETF", "semiconductors"),
	cnETFT0("518880", "黄金ETF", "precious metals"),
	cnETFT0("159502", "标普生物科技ETF", "biotech"),
	cnETFT0("513100", "纳指ETF", "overseas index"),
	cnETFT0("513120", "恒生创新药ETF", "healthcare"),
	cnETFT0("513130", "恒生科技ETF", "technology"),
}

// USStocks is the universe of US large caps across sectors.
var USStocks = []UniverseEntry{
	usStock("AAPL", "Apple Inc.", "technology"),
	usStock("MSFT", "Microsoft Corporation", "technology"),
	usStock("GOOGL", "Alphabet Inc.", "technology"),
	usStock("AMZN", "Amazon.com Inc.", "e-commerce"),
	usStock("TSLA", "Tesla Inc.", "new energy"),
	usStock("NVDA", "NVIDIA Corporation", "AI/semiconductors"),
	usStock("META", "Meta Platforms Inc.", "technology"),
	usStock("JPM", "JPMorgan Chase & Co.", "financials"),
	usStock("JNJ", "Johnson & Johnson", "healthcare"),
	usStock("V", "Visa Inc.", "financials"),
	usStock("MA", "Mastercard Incorporated", "financials"),
	usStock("DIS", "The Walt Disney Company", "entertainment"),
	usStock("NFLX", "Netflix Inc.", "entertainment"),
	usStock("BABA", "Alibaba Group", "e-commerce"),
}
