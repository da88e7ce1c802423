package tokens

// DefaultDecimals is assumed for tokens the registry does not recognize.
const DefaultDecimals = 18

type mainnetToken struct {
	address  string
	symbol   string
	decimals uint8
}

var mainnetTokens = []mainnetToken{
	{"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "USDC", 6},
	{"0xdac17f958d2ee523a2206206994597c13d831ec7", "USDT", 6},
	{"0x6b175474e89094c44da98b954eedeac495271d0f", "DAI", 18},
	{"0x853d955acef822db058eb8505911ed77f175b99e", "FRAX", 18},
	{"0x5f98805a4e8be255a32880fdec7f6728c6568ba0", "LUSD", 18},
	{"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", "WETH", 18},
	{"0x2260fac5e5542a773aa44fbcfedf7c193bc2c599", "WBTC", 8},
	{"0xcd5fe23c85820f7b72d0926fc9b05b43e359b7ee", "weETH", 18},
	{"0x7f39c581f595b53c5cb19bd0b3f8da6c935e2ca0", "wstETH", 18},
	{"0xae78736cd615f374d3085123a210448e74fc6393", "rETH", 18},
	{"0xbe9895146f7af43049ca1c1ae358b0541ea49704", "cbETH", 18},
	{"0xa35b1b31ce002fbf2058d22f30f95d405200a15b", "ETHx", 18},
	{"0xac3e018457b222d93114458476f3e3416abbe38f", "sfrxETH", 18},
}

// DefaultMainnet returns the built-in Ethereum mainnet registry.
func DefaultMainnet() *Registry {
	registry := NewRegistry()
	for _, token := range mainnetTokens {
		_ = registry.Add(token.address, token.symbol, token.decimals)
	}
	return registry
}
