package database

import "embed"

// PartitionSQL 分区表建表语句与配置
//
//go:embed partitions/*.sql partitions/*.conf
var PartitionSQL embed.FS
