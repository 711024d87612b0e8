package metrics

const Namespace = "todolist"
