package postgres

// UserModel é o model GORM para a tabela de identidade.
// O uniqueIndex em email fecha, no nível do schema, a corrida
// check-then-insert do cadastro.
type UserModel struct {
	UserID    uint           `gorm:"column:user_id;primaryKey;autoIncrement"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string         `gorm:"type:varchar(255);not null"`
	CreatedAt int64          `gorm:"autoCreateTime"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
	Info      *UserInfoModel `gorm:"foreignKey:UserID;references:UserID"`
}

func (UserModel) TableName() string {
	return "users"
}

// UserInfoModel é o model GORM para o perfil 1:1.
// O uniqueIndex em user_id garante no máximo um perfil por usuário.
type UserInfoModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	UserID       uint   `gorm:"column:user_id;uniqueIndex;not null"`
	Name         string `gorm:"type:varchar(255);not null"`
	Age          int    `gorm:"not null"`
	Gender       string `gorm:"type:varchar(50);not null"` // sempre em maiúsculas
	ProfileImage string `gorm:"type:varchar(500)"`
}

func (UserInfoModel) TableName() string {
	return "user_infos"
}

// UserHistoryModel é o model GORM para o log de auditoria de nomes (1:N)
type UserHistoryModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	UserID     uint   `gorm:"column:user_id;index;not null"`
	BeforeName string `gorm:"type:varchar(255);not null"`
	AfterName  string `gorm:"type:varchar(255);not null"`
	CreatedAt  int64  `gorm:"autoCreateTime"`
}

func (UserHistoryModel) TableName() string {
	return "user_histories"
}
