package config

// DefaultConfigYAML 内置默认配置，可被外部配置文件和环境变量覆盖
var DefaultConfigYAML = []byte(`server:
  port: ":8080"
  mode: "release"
  base_url: "http://localhost:8080"

database:
  host: "127.0.0.1"
  port: "3306"
  username: "aifinance"
  password: "aifinance"
  dbname: "aifinance"
  charset: "utf8mb4"

auth:
  enabled: false
  username: "admin"
  password_hash: ""
  password: ""

jwt:
  secret: "change-me-in-production"
  expire_hours: 24

ai:
  base_url: "https://api.openai.com/v1"
  api_key: ""
  model: "gpt-4o-mini"
  timeout_seconds: 30

email:
  enabled: false
  host: "smtp.example.com"
  port: 465
  username: ""
  password: ""
  from: "记账助手"
  to: ""
`)
