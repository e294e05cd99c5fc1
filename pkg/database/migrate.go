package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// 考勤库的全部 schema 变更以编号 SQL 的形式随二进制内嵌，
// 其中 000001_init 建立教师/部门/出勤/节假日/预警五张表，
// 含 attendance_records 的 (teacher_id, date) 唯一约束（upsert 的前提）
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 启动时将考勤库 schema 升级到最新版本
// 已是最新版本时为空操作，可安全重复执行
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("考勤库迁移处于 dirty 状态，需人工介入", zap.Uint("version", version))
	} else {
		logger.Info("考勤库迁移完成", zap.Uint("version", version))
	}

	return nil
}
