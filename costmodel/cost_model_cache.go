package costmodel

import (
	lru "github.com/hashicorp/golang-lru"

	tplog "github.com/TopiaNetwork/topia-costmodel/log"
	txbasic "github.com/TopiaNetwork/topia-costmodel/transaction"
)

type cachedTxCost struct {
	tableVersion uint64
	txCost       *TransactionCost
}

// CostModelCache memoizes per-transaction estimates keyed by transaction
// hash. Entries computed against an older table version are recomputed, so
// a hit always matches what CalculateCost would return.
type CostModelCache struct {
	log       tplog.Logger
	costModel *CostModel
	cache     *lru.ARCCache
}

func NewCostModelCache(log tplog.Logger, costModel *CostModel, cacheSize int) (*CostModelCache, error) {
	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		return nil, err
	}

	return &CostModelCache{
		log:       log,
		costModel: costModel,
		cache:     cache,
	}, nil
}

func (cc *CostModelCache) CalculateCost(tx *txbasic.Transaction, demoteProgramWriteLocks bool) (*TransactionCost, error) {
	hashBytes, err := tx.HashBytes()
	if err != nil {
		cc.log.Errorf("Can't hash transaction for estimate cache: %v", err)
		return nil, err
	}

	key := cacheKey(hashBytes, demoteProgramWriteLocks)
	version := cc.costModel.TableVersion()

	if val, ok := cc.cache.Get(key); ok {
		cached := val.(*cachedTxCost)
		if cached.tableVersion == version {
			return cached.txCost.DeepCopy(), nil
		}
	}

	txCost := cc.costModel.CalculateCost(tx, demoteProgramWriteLocks)
	cc.cache.Add(key, &cachedTxCost{
		tableVersion: version,
		txCost:       txCost.DeepCopy(),
	})

	return txCost, nil
}

func (cc *CostModelCache) Len() int {
	return cc.cache.Len()
}

func cacheKey(txHash []byte, demoteProgramWriteLocks bool) string {
	flag := byte(0)
	if demoteProgramWriteLocks {
		flag = 1
	}

	return string(append([]byte{flag}, txHash...))
}
