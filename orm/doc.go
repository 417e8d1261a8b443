/*
Package orm splits the state into buckets. A bucket holds a single model
type under "<name>:<key>" and may keep secondary indexes, each mapping a
value to the keys of all models sharing it.

Extensions use a ModelBucket:

	b := orm.NewModelBucket("lockers", &Locker{},
		orm.WithIndex("depositor", depositorIndexer),
	)
	key, err := b.Put(db, nil, &locker)
*/
package orm
