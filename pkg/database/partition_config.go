package database

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
)

// PartitionTable 单张按月分区表
type PartitionTable struct {
	Name            string // 表名
	RetentionMonths int    // 保留月数（0=永久）
	DDL             string // 建表语句
}

// PartitionConfig 分区表清单
type PartitionConfig struct {
	Tables []PartitionTable
}

// LoadPartitionConfig 从文件系统读取 partition_tables.conf 及对应的 <表名>.sql
func LoadPartitionConfig(fsys fs.FS, root string) (*PartitionConfig, error) {
	raw, err := fs.ReadFile(fsys, path.Join(root, "partition_tables.conf"))
	if err != nil {
		return nil, fmt.Errorf("读取分区配置失败: %w", err)
	}

	cfg, err := parsePartitionConfig(string(raw))
	if err != nil {
		return nil, err
	}

	for i := range cfg.Tables {
		ddl, err := fs.ReadFile(fsys, path.Join(root, cfg.Tables[i].Name+".sql"))
		if err != nil {
			return nil, fmt.Errorf("读取 %s.sql 失败: %w", cfg.Tables[i].Name, err)
		}
		cfg.Tables[i].DDL = string(ddl)
	}
	return cfg, nil
}

func parsePartitionConfig(content string) (*PartitionConfig, error) {
	cfg := &PartitionConfig{}
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, retention, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("分区配置第 %d 行格式错误: %q", lineNo, line)
		}
		months, err := strconv.Atoi(strings.TrimSpace(retention))
		if err != nil || months < 0 {
			return nil, fmt.Errorf("分区配置第 %d 行保留月数无效: %q", lineNo, retention)
		}
		cfg.Tables = append(cfg.Tables, PartitionTable{
			Name:            strings.TrimSpace(name),
			RetentionMonths: months,
		})
	}
	return cfg, scanner.Err()
}

// TableNames 所有分区表名
func (c *PartitionConfig) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		names = append(names, t.Name)
	}
	return names
}

// Has 是否为分区表
func (c *PartitionConfig) Has(name string) bool {
	for _, t := range c.Tables {
		if t.Name == name {
			return true
		}
	}
	return false
}
